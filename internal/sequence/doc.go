// Package sequence implements second-order additive recurrences such as the
// Fibonacci sequence.
//
// A Sequence is fully determined by its two seed terms; every following term
// is the sum of the two before it. The package offers forward computation of
// the nth term (1-based) and reverse lookup of a value's position. Both walk
// the recurrence one step at a time and keep only the two most recent terms
// alive, so memory use is constant apart from the size of the numbers
// themselves.
//
// The numeric type is a type parameter. Any type can be used through an
// Arithmetic implementation; Big (math/big), Int64 and Uint64 are provided,
// and GMP is available when building with the "gmp" tag. Switching from a
// fixed-width to an arbitrary-precision type changes range and speed, never
// the algorithm.
//
// Reverse lookup relies on the sequence being non-decreasing: it stops as soon
// as a term exceeds the target. Seeds that produce negative or oscillating
// sequences are not supported by Find.
package sequence
