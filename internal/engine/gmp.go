//go:build gmp

package engine

import (
	"github.com/ncw/gmp"

	"github.com/agbru/fiblike/internal/sequence"
)

func init() {
	RegisterEngine("gmp", func() Engine { return New[*gmp.Int](sequence.GMP{}, "Arbitrary precision (libgmp)") })
}
