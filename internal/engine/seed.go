package engine

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/fiblike/internal/errors"
)

// Seed holds the two starting terms of a sequence as decimal text. Each
// backend parses it with its own numeric type, so the same Seed can be valid
// for "big" and out of range for "int64".
type Seed struct {
	First  string
	Second string
}

// DefaultSeed is the Fibonacci seed (1, 1).
var DefaultSeed = Seed{First: "1", Second: "1"}

// ParseSeed reads a seed written as "a,b". Surrounding spaces are ignored.
// Only the shape is checked here; the digits are validated by the backend.
func ParseSeed(s string) (Seed, error) {
	first, second, ok := strings.Cut(s, ",")
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if !ok || first == "" || second == "" || strings.Contains(second, ",") {
		return Seed{}, apperrors.ValidationError{
			Field:   "seed",
			Message: fmt.Sprintf("must be two integers separated by a comma, got %q", s),
		}
	}
	return Seed{First: first, Second: second}, nil
}

// IsDefault reports whether s is the Fibonacci seed.
func (s Seed) IsDefault() bool { return s == DefaultSeed }

// IsNegative reports whether either seed term is written with a minus sign.
func (s Seed) IsNegative() bool {
	return strings.HasPrefix(s.First, "-") || strings.HasPrefix(s.Second, "-")
}

// String renders the seed as "(a, b)".
func (s Seed) String() string { return "(" + s.First + ", " + s.Second + ")" }

// Key renders the seed as "a,b", the form ParseSeed accepts.
func (s Seed) Key() string { return s.First + "," + s.Second }
