package sequence

import (
	"context"
	"iter"
)

// checkInterval is the number of steps between two context checks (and
// progress reports) in the cancellable walks. A power of two keeps the modulo
// cheap.
const checkInterval = 1 << 12

// ProgressFunc receives the completed fraction of a computation, from 0 to 1.
type ProgressFunc func(progress float64)

// Pair holds two consecutive terms of a sequence.
type Pair[T any] struct {
	Prev T
	Curr T
}

// Step advances p by one position: (x, y) becomes (y, x+y).
func Step[T any](arith Arithmetic[T], p Pair[T]) Pair[T] {
	return Pair[T]{Prev: p.Curr, Curr: arith.Add(p.Prev, p.Curr)}
}

// Sequence is a second-order additive recurrence defined by its first two
// terms. The zero value is not usable; build one with New, FromLiterals or
// Fibonacci. A Sequence is immutable and safe for concurrent use.
type Sequence[T any] struct {
	arith  Arithmetic[T]
	first  T
	second T
}

// New returns the sequence whose terms at positions 1 and 2 are first and
// second.
func New[T any](arith Arithmetic[T], first, second T) Sequence[T] {
	return Sequence[T]{arith: arith, first: first, second: second}
}

// FromLiterals is New with seeds given as small integer literals.
func FromLiterals[T any](arith Arithmetic[T], first, second int64) Sequence[T] {
	return New(arith, arith.FromInt64(first), arith.FromInt64(second))
}

// Fibonacci returns the canonical Fibonacci sequence 1, 1, 2, 3, 5, ...
func Fibonacci[T any](arith Arithmetic[T]) Sequence[T] {
	return FromLiterals(arith, 1, 1)
}

// Seed returns the terms at positions 1 and 2.
func (s Sequence[T]) Seed() (first, second T) {
	return s.first, s.second
}

// Arithmetic returns the numeric implementation the sequence computes with.
func (s Sequence[T]) Arithmetic() Arithmetic[T] {
	return s.arith
}

// NthTerm returns the term at the 1-based position n. It takes n-2 additions
// for n > 2. NthTerm panics if n is 0.
func (s Sequence[T]) NthTerm(n uint64) T {
	term, _ := s.NthTermContext(context.Background(), n, nil)
	return term
}

// NthTermContext is NthTerm with cancellation and progress reporting. The
// context is checked every few thousand steps; when it is done the walk stops
// and ctx.Err() is returned. report may be nil.
func (s Sequence[T]) NthTermContext(ctx context.Context, n uint64, report ProgressFunc) (T, error) {
	if n == 0 {
		panic("sequence: position must be at least 1")
	}
	if report == nil {
		report = func(float64) {}
	}

	switch n {
	case 1:
		report(1)
		return s.first, nil
	case 2:
		report(1)
		return s.second, nil
	}

	p := Pair[T]{Prev: s.first, Curr: s.second}
	steps := n - 2
	for i := uint64(1); i <= steps; i++ {
		p = Step(s.arith, p)
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				var zero T
				return zero, err
			}
			report(float64(i) / float64(steps))
		}
	}
	report(1)
	return p.Curr, nil
}

// All returns an iterator over (position, term) pairs starting at position 1.
// The sequence is infinite: the iteration ends only when the consumer stops.
func (s Sequence[T]) All() iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		if !yield(1, s.first) || !yield(2, s.second) {
			return
		}
		p := Pair[T]{Prev: s.first, Curr: s.second}
		for pos := uint64(3); ; pos++ {
			p = Step(s.arith, p)
			if !yield(pos, p.Curr) {
				return
			}
		}
	}
}

// Terms returns the first count terms. It returns nil when count is not
// positive.
func (s Sequence[T]) Terms(count int) []T {
	if count <= 0 {
		return nil
	}
	terms := make([]T, 0, min(count, 1<<16))
	for _, term := range s.All() {
		terms = append(terms, term)
		if len(terms) == count {
			break
		}
	}
	return terms
}
