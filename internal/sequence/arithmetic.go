package sequence

import (
	"cmp"
	"math/big"
	"strconv"
)

// Arithmetic describes the operations a recurrence needs from its numeric
// type: construction from a small literal, addition, and a three-way
// comparison that covers both equality and ordering. Parse and Format convert
// at the program boundary.
//
// Add must not modify its operands. Sequences hand out terms to callers and
// an in-place addition would change values they still hold.
type Arithmetic[T any] interface {
	// Name identifies the numeric representation (e.g. "big", "int64").
	Name() string
	// FromInt64 builds a value from a small integer literal.
	FromInt64(v int64) T
	// Parse reads a base-10 integer. Errors are *strconv.NumError.
	Parse(s string) (T, error)
	// Add returns x + y.
	Add(x, y T) T
	// Cmp returns -1, 0 or +1 depending on whether x is less than, equal to
	// or greater than y.
	Cmp(x, y T) int
	// Format renders v in base 10.
	Format(v T) string
}

// Big is the arbitrary-precision Arithmetic backed by math/big. Every
// addition allocates a fresh *big.Int.
type Big struct{}

// Name returns "big".
func (Big) Name() string { return "big" }

// FromInt64 returns a new *big.Int holding v.
func (Big) FromInt64(v int64) *big.Int { return big.NewInt(v) }

// Parse reads an arbitrarily large base-10 integer.
func (Big) Parse(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &strconv.NumError{Func: "ParseBig", Num: s, Err: strconv.ErrSyntax}
	}
	return v, nil
}

// Add returns a newly allocated x + y.
func (Big) Add(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) }

// Cmp compares x and y.
func (Big) Cmp(x, y *big.Int) int { return x.Cmp(y) }

// Format renders v in base 10.
func (Big) Format(v *big.Int) string { return v.String() }

// Int64 is the signed fixed-width Arithmetic. Additions wrap around on
// overflow following Go's two's complement semantics; no check is made.
type Int64 struct{}

// Name returns "int64".
func (Int64) Name() string { return "int64" }

// FromInt64 returns v.
func (Int64) FromInt64(v int64) int64 { return v }

// Parse reads a base-10 int64.
func (Int64) Parse(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// Add returns x + y, wrapping on overflow.
func (Int64) Add(x, y int64) int64 { return x + y }

// Cmp compares x and y.
func (Int64) Cmp(x, y int64) int { return cmp.Compare(x, y) }

// Format renders v in base 10.
func (Int64) Format(v int64) string { return strconv.FormatInt(v, 10) }

// Uint64 is the unsigned fixed-width Arithmetic. Additions wrap modulo 2^64.
type Uint64 struct{}

// Name returns "uint64".
func (Uint64) Name() string { return "uint64" }

// FromInt64 converts v; negative literals wrap modulo 2^64.
func (Uint64) FromInt64(v int64) uint64 { return uint64(v) }

// Parse reads a base-10 uint64.
func (Uint64) Parse(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

// Add returns x + y modulo 2^64.
func (Uint64) Add(x, y uint64) uint64 { return x + y }

// Cmp compares x and y.
func (Uint64) Cmp(x, y uint64) int { return cmp.Compare(x, y) }

// Format renders v in base 10.
func (Uint64) Format(v uint64) string { return strconv.FormatUint(v, 10) }

// Compile-time checks.
var (
	_ Arithmetic[*big.Int] = Big{}
	_ Arithmetic[int64]    = Int64{}
	_ Arithmetic[uint64]   = Uint64{}
)
