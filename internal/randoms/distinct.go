package randoms

import (
	"pinto/internal/failure"
)

const maxRedraws = 10_000

// Distinct turns a draw function into a stream that never yields a value
// equal to the one it yielded immediately before. The remembered value
// starts at the zero value of V, so the first result is never zero.
type Distinct[V any] struct {
	draw  func() V
	equal func(a, b V) bool
	prev  V
}

func NewDistinct[V comparable](draw func() V) *Distinct[V] {
	return NewDistinctFunc(draw, func(a, b V) bool { return a == b })
}

func NewDistinctFunc[V any](draw func() V, equal func(a, b V) bool) *Distinct[V] {
	return &Distinct[V]{draw: draw, equal: equal}
}

// Next redraws until the value differs from the previous result. A draw
// function that keeps repeating itself is reported instead of spinning
// forever.
func (d *Distinct[V]) Next() (V, error) {
	for range maxRedraws {
		v := d.draw()
		if !d.equal(v, d.prev) {
			d.prev = v
			return v, nil
		}
	}
	var zero V
	return zero, failure.Configf("generator repeated its previous value %d times in a row: %v", maxRedraws, d.prev)
}

// Element returns a uniformly chosen item. Panics on an empty slice.
func Element[T any](s *Source, items []T) T {
	return items[s.rng.Intn(len(items))]
}
