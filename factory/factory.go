// Package factory builds value generators for types the built-in registry
// does not cover. Each helper returns the type it generates together with
// the generator, ready to hand to a verifier's WithComplexTypeSupplier.
package factory

import (
	"pinto/internal/randoms"
	"reflect"

	"pgregory.net/rapid"
)

// Func produces one value per call. The value must be assignable to the
// type the Func is registered for; nil stands for that type's zero value.
type Func func() any

// Of adapts a typed generator.
func Of[B any](fn func() B) (reflect.Type, Func) {
	return reflect.TypeFor[B](), func() any { return fn() }
}

// Distinct adapts fn so that no result equals the one before it. A fn that
// keeps returning the same value makes the generator panic, which the
// verifiers report as a configuration error.
func Distinct[B comparable](fn func() B) (reflect.Type, Func) {
	d := randoms.NewDistinct(fn)
	return reflect.TypeFor[B](), func() any {
		v, err := d.Next()
		if err != nil {
			panic(err)
		}
		return v
	}
}

// FromRapid draws values from a rapid generator, seeded from seed and
// advancing by one per draw, so the stream is reproducible. Consecutive
// values are never deeply equal.
func FromRapid[B any](g *rapid.Generator[B], seed int) (reflect.Type, Func) {
	next := seed
	d := randoms.NewDistinctFunc(func() B {
		next++
		return g.Example(next)
	}, func(a, b B) bool { return reflect.DeepEqual(a, b) })
	return reflect.TypeFor[B](), func() any {
		v, err := d.Next()
		if err != nil {
			panic(err)
		}
		return v
	}
}

// Enumeration is a closed set of constants for a type that has no Values
// method of its own.
type Enumeration struct {
	Type   reflect.Type
	Values []any
}

func Enum[E comparable](values ...E) Enumeration {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return Enumeration{Type: reflect.TypeFor[E](), Values: out}
}
