package sequence

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is matched (through errors.Is) by every NotFoundError.
var ErrNotFound = errors.New("sequence: value not found")

// NotFoundError reports that a value does not appear in a sequence. Value is
// the target that was searched for.
type NotFoundError[T any] struct {
	Value T
	text  string
}

func newNotFoundError[T any](arith Arithmetic[T], v T) *NotFoundError[T] {
	return &NotFoundError[T]{Value: v, text: arith.Format(v)}
}

// Error returns a message naming the missing value.
func (e *NotFoundError[T]) Error() string {
	return fmt.Sprintf("value %s does not appear in the sequence", e.text)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError[T]) Unwrap() error { return ErrNotFound }

// Find returns the first 1-based position whose term equals target.
//
// The two seed positions are checked first. After that the sequence is
// walked forward until a term equals target, or a term is strictly greater
// than target, in which case a *NotFoundError is returned. When the seeds
// repeat a value (1, 1, ...) the lowest position wins.
//
// Once two consecutive terms are non-negative the walk can only grow, so a
// term smaller than its predecessor means a fixed-width type wrapped around
// and the search ends with a *NotFoundError as well. The all-zero sequence
// is answered without walking.
//
// With negative seeds the walk may never pass target and Find does not
// return; use FindContext with a deadline when the seeds are not trusted.
func (s Sequence[T]) Find(target T) (uint64, error) {
	return s.FindContext(context.Background(), target)
}

// FindContext is Find with cancellation. The context is checked every few
// thousand steps; when it is done the search stops and ctx.Err() is
// returned.
func (s Sequence[T]) FindContext(ctx context.Context, target T) (uint64, error) {
	if s.arith.Cmp(s.first, target) == 0 {
		return 1, nil
	}
	if s.arith.Cmp(s.second, target) == 0 {
		return 2, nil
	}

	zero := s.arith.FromInt64(0)
	if s.arith.Cmp(s.first, zero) == 0 && s.arith.Cmp(s.second, zero) == 0 {
		return 0, newNotFoundError(s.arith, target)
	}

	p := Pair[T]{Prev: s.first, Curr: s.second}
	growing := s.arith.Cmp(p.Prev, zero) >= 0 && s.arith.Cmp(p.Curr, zero) >= 0
	for pos := uint64(3); ; pos++ {
		next := Step(s.arith, p)
		if growing && s.arith.Cmp(next.Curr, p.Curr) < 0 {
			return 0, newNotFoundError(s.arith, target)
		}
		p = next
		switch c := s.arith.Cmp(p.Curr, target); {
		case c == 0:
			return pos, nil
		case c > 0:
			return 0, newNotFoundError(s.arith, target)
		}
		if !growing {
			growing = s.arith.Cmp(p.Prev, zero) >= 0 && s.arith.Cmp(p.Curr, zero) >= 0
		}
		if pos%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}
}
