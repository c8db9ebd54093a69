package registry

import (
	"pinto/internal/randoms"
	"reflect"
	"slices"

	"github.com/google/uuid"
)

// addScalar registers V, *V, []*V and []V. Each key keeps its own
// never-repeat state. Slice elements are raw draws: a never-repeat
// element stream over bool would make every even-length []bool equal.
func addScalar[V comparable](r *Registry, draw func() V) {
	scalar := randoms.NewDistinct(draw)
	r.standard[reflect.TypeFor[V]()] = generatorOf(scalar.Next)

	boxed := randoms.NewDistinctFunc(func() *V {
		v := draw()
		return &v
	}, pointeesEqual[V])
	r.standard[reflect.TypeFor[*V]()] = generatorOf(boxed.Next)

	drawBoxedSlice := func() []*V {
		out := make([]*V, r.src.IntRange(r.arrayLen.Min, r.arrayLen.Max))
		for i := range out {
			v := draw()
			out[i] = &v
		}
		return out
	}
	boxedSlice := randoms.NewDistinctFunc(drawBoxedSlice, func(a, b []*V) bool {
		return slices.EqualFunc(a, b, pointeesEqual[V])
	})
	r.standard[reflect.TypeFor[[]*V]()] = generatorOf(boxedSlice.Next)

	slice := randoms.NewDistinctFunc(func() []V {
		return unbox(drawBoxedSlice())
	}, slices.Equal[[]V])
	r.standard[reflect.TypeFor[[]V]()] = generatorOf(slice.Next)
}

func pointeesEqual[V comparable](a, b *V) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func unbox[V any](in []*V) []V {
	out := make([]V, len(in))
	for i, p := range in {
		out[i] = *p
	}
	return out
}

func generatorOf[V any](next func() (V, error)) Generator {
	return GeneratorFunc(func() (reflect.Value, error) {
		v, err := next()
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil
	})
}

func (r *Registry) addStandard() {
	s := r.src
	addScalar(r, s.Bool)
	addScalar(r, s.Int)
	addScalar(r, s.Int8)
	addScalar(r, s.Int16)
	addScalar(r, s.Int32)
	addScalar(r, s.Int64)
	addScalar(r, s.Uint)
	addScalar(r, s.Uint8)
	addScalar(r, s.Uint16)
	addScalar(r, s.Uint32)
	addScalar(r, s.Uint64)
	addScalar(r, s.Uintptr)
	addScalar(r, s.Float32)
	addScalar(r, s.Float64)
	addScalar(r, s.Complex64)
	addScalar(r, s.Complex128)
	addScalar(r, func() string {
		return s.Alphanumeric(s.IntRange(r.stringLen.Min, r.stringLen.Max))
	})
	addScalar(r, s.Time)
	addScalar(r, func() uuid.UUID {
		return uuid.Must(uuid.NewRandomFromReader(s))
	})
}

var scalarKinds = map[reflect.Kind]reflect.Type{
	reflect.Bool:       reflect.TypeFor[bool](),
	reflect.Int:        reflect.TypeFor[int](),
	reflect.Int8:       reflect.TypeFor[int8](),
	reflect.Int16:      reflect.TypeFor[int16](),
	reflect.Int32:      reflect.TypeFor[int32](),
	reflect.Int64:      reflect.TypeFor[int64](),
	reflect.Uint:       reflect.TypeFor[uint](),
	reflect.Uint8:      reflect.TypeFor[uint8](),
	reflect.Uint16:     reflect.TypeFor[uint16](),
	reflect.Uint32:     reflect.TypeFor[uint32](),
	reflect.Uint64:     reflect.TypeFor[uint64](),
	reflect.Uintptr:    reflect.TypeFor[uintptr](),
	reflect.Float32:    reflect.TypeFor[float32](),
	reflect.Float64:    reflect.TypeFor[float64](),
	reflect.Complex64:  reflect.TypeFor[complex64](),
	reflect.Complex128: reflect.TypeFor[complex128](),
	reflect.String:     reflect.TypeFor[string](),
}
