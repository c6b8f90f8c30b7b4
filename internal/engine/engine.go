// Package engine exposes the numeric backends of the sequence package behind
// one type-erased interface. Values cross this boundary as decimal strings,
// which lets the CLI, the HTTP server and the TUI pick a backend by name at
// run time while the core stays generic.
package engine

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

import (
	"context"
	"fmt"

	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/sequence"
)

// Engine computes sequence terms with one numeric representation.
type Engine interface {
	// Name is the registry key (e.g. "big", "int64").
	Name() string
	// Description is a short human readable summary of the representation.
	Description() string
	// Term returns the term at the 1-based position n. n must be at least 1.
	// report may be nil.
	Term(ctx context.Context, seed Seed, n uint64, report sequence.ProgressFunc) (string, error)
	// Find returns the position of target. A missing value yields an error
	// matching sequence.ErrNotFound.
	//
	// Seeds and targets the numeric type cannot represent are reported as
	// apperrors.ValidationError by all three methods.
	Find(ctx context.Context, seed Seed, target string) (uint64, error)
	// Terms returns the first count terms.
	Terms(ctx context.Context, seed Seed, count int) ([]string, error)
}

// maxPrealloc bounds the capacity Terms reserves up front. Larger lists grow
// as terms are produced, so an oversized count fails on the context rather
// than on the allocation.
const maxPrealloc = 1 << 16

// backend adapts a generic Arithmetic to the Engine interface.
type backend[T any] struct {
	arith       sequence.Arithmetic[T]
	description string
}

// New wraps arith into an Engine.
func New[T any](arith sequence.Arithmetic[T], description string) Engine {
	if arith == nil {
		panic("engine: the Arithmetic implementation cannot be nil")
	}
	return &backend[T]{arith: arith, description: description}
}

func (b *backend[T]) Name() string        { return b.arith.Name() }
func (b *backend[T]) Description() string { return b.description }

func (b *backend[T]) build(seed Seed) (sequence.Sequence[T], error) {
	first, err := b.parse("seed", seed.First)
	if err != nil {
		return sequence.Sequence[T]{}, err
	}
	second, err := b.parse("seed", seed.Second)
	if err != nil {
		return sequence.Sequence[T]{}, err
	}
	return sequence.New(b.arith, first, second), nil
}

func (b *backend[T]) parse(what, s string) (T, error) {
	v, err := b.arith.Parse(s)
	if err != nil {
		var zero T
		return zero, apperrors.ValidationError{
			Field:   what,
			Message: fmt.Sprintf("%q is not a valid %s value", s, b.arith.Name()),
		}
	}
	return v, nil
}

func (b *backend[T]) Term(ctx context.Context, seed Seed, n uint64, report sequence.ProgressFunc) (string, error) {
	if n == 0 {
		return "", apperrors.ValidationError{Field: "n", Message: "position must be at least 1"}
	}
	seq, err := b.build(seed)
	if err != nil {
		return "", err
	}
	term, err := seq.NthTermContext(ctx, n, report)
	if err != nil {
		return "", err
	}
	return b.arith.Format(term), nil
}

func (b *backend[T]) Find(ctx context.Context, seed Seed, target string) (uint64, error) {
	seq, err := b.build(seed)
	if err != nil {
		return 0, err
	}
	v, err := b.parse("value", target)
	if err != nil {
		return 0, err
	}
	return seq.FindContext(ctx, v)
}

func (b *backend[T]) Terms(ctx context.Context, seed Seed, count int) ([]string, error) {
	seq, err := b.build(seed)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, nil
	}
	terms := make([]string, 0, min(count, maxPrealloc))
	for pos, term := range seq.All() {
		if pos%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		terms = append(terms, b.arith.Format(term))
		if len(terms) == count {
			break
		}
	}
	return terms, nil
}
