//go:build gmp

// GMP support is opt-in: it needs cgo and libgmp, so it is only compiled with
// `go build -tags=gmp`.

package sequence

import (
	"strconv"

	"github.com/ncw/gmp"
)

// GMP is the arbitrary-precision Arithmetic backed by libgmp through
// github.com/ncw/gmp. Its assembly kernels pay off for very large terms; for
// small ones the cgo call overhead makes Big faster.
type GMP struct{}

var _ Arithmetic[*gmp.Int] = GMP{}

// Name returns "gmp".
func (GMP) Name() string { return "gmp" }

// FromInt64 returns a new *gmp.Int holding v.
func (GMP) FromInt64(v int64) *gmp.Int { return gmp.NewInt(v) }

// Parse reads an arbitrarily large base-10 integer.
func (GMP) Parse(s string) (*gmp.Int, error) {
	v, ok := new(gmp.Int).SetString(s, 10)
	if !ok {
		return nil, &strconv.NumError{Func: "ParseGMP", Num: s, Err: strconv.ErrSyntax}
	}
	return v, nil
}

// Add returns a newly allocated x + y.
func (GMP) Add(x, y *gmp.Int) *gmp.Int { return new(gmp.Int).Add(x, y) }

// Cmp compares x and y.
func (GMP) Cmp(x, y *gmp.Int) int { return x.Cmp(y) }

// Format renders v in base 10.
func (GMP) Format(v *gmp.Int) string { return v.String() }
