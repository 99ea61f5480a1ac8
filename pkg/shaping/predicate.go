package shaping

import (
	"cmp"
	"errors"
	"strings"
)

// ErrInvalidRange is returned by Range.Validate when Min is above Max.
var ErrInvalidRange = errors.New("range minimum is greater than its maximum")

// Predicate reports whether an item is kept.
type Predicate[T any] func(T) bool

// All keeps every item.
func All[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And keeps items accepted by every predicate. Nil predicates are skipped.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(item T) bool {
		for _, p := range active {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Range is an inclusive [Min, Max] interval.
type Range[V cmp.Ordered] struct {
	Min V
	Max V
}

// Validate must be called before a Range is used to filter.
func (r Range[V]) Validate() error {
	if r.Min > r.Max {
		return ErrInvalidRange
	}
	return nil
}

// Contains is inclusive on both ends.
func (r Range[V]) Contains(v V) bool {
	return r.Min <= v && v <= r.Max
}

// InRange keeps items whose value lies inside r. get reports false for an
// absent value, and such items are never kept.
func InRange[T any, V cmp.Ordered](get func(T) (V, bool), r Range[V]) Predicate[T] {
	return func(item T) bool {
		v, ok := get(item)
		return ok && r.Contains(v)
	}
}

// Equals keeps items whose field equals term exactly, case included.
// A blank term keeps everything.
func Equals[T any](get func(T) string, term string) Predicate[T] {
	if strings.TrimSpace(term) == "" {
		return All[T]()
	}
	return func(item T) bool {
		return get(item) == term
	}
}

// Filter returns the items accepted by pred, in input order.
func Filter[T any](items []T, pred Predicate[T]) []T {
	if pred == nil {
		pred = All[T]()
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
