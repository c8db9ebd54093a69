package registry_test

import (
	"errors"
	"pinto/internal/config"
	"pinto/internal/failure"
	"pinto/internal/randoms"
	"pinto/internal/registry"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

const (
	low level = iota
	mid
	high
)

func (level) Values() []level { return []level{low, mid, high} }

type empty int

func (empty) Values() []empty { return nil }

type twice int

func (*twice) Values() []twice { return []twice{1, 1} }

type color string

type celsius float64

type ids []int

type money struct {
	Amount   int64
	Currency string
}

type node struct {
	name  string
	count int
	lvl   level
	next  *node
	ch    chan int
}

type marker struct{}

func newRegistry(t *testing.T, opts ...registry.Option) *registry.Registry {
	t.Helper()
	return registry.New(randoms.New(1234), opts...)
}

func draw(t *testing.T, r *registry.Registry, typ reflect.Type, n int) []any {
	t.Helper()
	out := make([]any, n)
	for i := range out {
		v, err := r.Next(typ)
		require.NoError(t, err)
		require.True(t, v.Type().AssignableTo(typ), "%s not assignable to %s", v.Type(), typ)
		out[i] = v.Interface()
	}
	return out
}

func TestStandard_NeverRepeats(t *testing.T) {
	r := newRegistry(t, registry.WithArrayLength(config.Range{Min: 1, Max: 2}),
		registry.WithStringLength(config.Range{Min: 1, Max: 1}))

	for _, typ := range r.StandardTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			values := draw(t, r, typ, 200)

			assert.False(t, reflect.ValueOf(values[0]).IsZero(), "first value is zero")
			for i := 1; i < len(values); i++ {
				if reflect.DeepEqual(values[i-1], values[i]) {
					t.Fatalf("call %d repeated %v", i, values[i])
				}
			}
		})
	}
}

func TestStandard_FixedLengthBoolSlices(t *testing.T) {
	r := newRegistry(t, registry.WithArrayLength(config.Range{Min: 2, Max: 2}))

	for _, typ := range []reflect.Type{reflect.TypeFor[[]bool](), reflect.TypeFor[[]*bool]()} {
		t.Run(typ.String(), func(t *testing.T) {
			seen := map[string]bool{}
			for _, v := range draw(t, r, typ, 50) {
				seen[fmtBools(v)] = true
			}

			assert.Greater(t, len(seen), 2)
		})
	}
}

func fmtBools(v any) string {
	var b strings.Builder
	switch vs := v.(type) {
	case []bool:
		for _, x := range vs {
			b.WriteString(strconv.FormatBool(x))
		}
	case []*bool:
		for _, x := range vs {
			b.WriteString(strconv.FormatBool(*x))
		}
	}
	return b.String()
}

func TestStandard_Table(t *testing.T) {
	r := newRegistry(t)
	for _, typ := range []reflect.Type{
		reflect.TypeFor[bool](), reflect.TypeFor[*bool](), reflect.TypeFor[[]bool](), reflect.TypeFor[[]*bool](),
		reflect.TypeFor[string](), reflect.TypeFor[[]string](), reflect.TypeFor[[]*string](),
		reflect.TypeFor[uint8](), reflect.TypeFor[[]byte](), reflect.TypeFor[rune](),
		reflect.TypeFor[complex128](), reflect.TypeFor[uintptr](),
		reflect.TypeFor[time.Time](), reflect.TypeFor[uuid.UUID](), reflect.TypeFor[[]uuid.UUID](),
	} {
		assert.Equal(t, registry.Standard, r.Classify(typ), typ.String())
	}
}

func TestStandard_Shapes(t *testing.T) {
	r := newRegistry(t,
		registry.WithArrayLength(config.Range{Min: 2, Max: 4}),
		registry.WithStringLength(config.Range{Min: 3, Max: 5}))

	t.Run("strings are alphanumeric within range", func(t *testing.T) {
		for _, v := range draw(t, r, reflect.TypeFor[string](), 100) {
			s := v.(string)
			assert.GreaterOrEqual(t, len(s), 3)
			assert.LessOrEqual(t, len(s), 5)
			for _, c := range s {
				assert.True(t, unicode.IsLetter(c) || unicode.IsDigit(c))
			}
		}
	})

	t.Run("slices stay within range", func(t *testing.T) {
		for _, v := range draw(t, r, reflect.TypeFor[[]int64](), 50) {
			n := len(v.([]int64))
			assert.GreaterOrEqual(t, n, 2)
			assert.LessOrEqual(t, n, 4)
		}
	})

	t.Run("boxed slices hold non-nil pointers", func(t *testing.T) {
		for _, v := range draw(t, r, reflect.TypeFor[[]*float32](), 50) {
			for _, p := range v.([]*float32) {
				assert.NotNil(t, p)
			}
		}
	})

	t.Run("times are utc", func(t *testing.T) {
		for _, v := range draw(t, r, reflect.TypeFor[time.Time](), 20) {
			assert.Equal(t, time.UTC, v.(time.Time).Location())
		}
	})

	t.Run("uuids are version 4", func(t *testing.T) {
		for _, v := range draw(t, r, reflect.TypeFor[uuid.UUID](), 20) {
			assert.Equal(t, uuid.Version(4), v.(uuid.UUID).Version())
		}
	})
}

func TestSeedReproducible(t *testing.T) {
	a := registry.New(randoms.New(99))
	b := registry.New(randoms.New(99))

	for _, typ := range []reflect.Type{reflect.TypeFor[string](), reflect.TypeFor[[]int](), reflect.TypeFor[uuid.UUID]()} {
		va, err := a.Next(typ)
		require.NoError(t, err)
		vb, err := b.Next(typ)
		require.NoError(t, err)
		assert.Equal(t, va.Interface(), vb.Interface())
	}
}

func TestEnumeration(t *testing.T) {
	t.Run("cycles through constants in order", func(t *testing.T) {
		r := newRegistry(t)
		typ := reflect.TypeFor[level]()

		assert.Equal(t, registry.Enumeration, r.Classify(typ))
		assert.Equal(t, []any{low, mid, high, low, mid, high}, draw(t, r, typ, 6))
	})

	t.Run("registered constants take precedence over derived handling", func(t *testing.T) {
		r := newRegistry(t)
		typ := reflect.TypeFor[color]()
		require.Equal(t, registry.Derived, r.Classify(typ))

		require.NoError(t, r.RegisterEnum(typ, []any{color("red"), color("green")}))

		assert.Equal(t, registry.Enumeration, r.Classify(typ))
		assert.Equal(t, []any{color("red"), color("green"), color("red")}, draw(t, r, typ, 3))
	})

	t.Run("zero constants is a configuration error", func(t *testing.T) {
		r := newRegistry(t)

		_, err := r.Next(reflect.TypeFor[empty]())

		assert.ErrorIs(t, err, failure.ErrConfiguration)
		assert.Contains(t, err.Error(), "no constants")
	})

	t.Run("pointer receiver values with duplicates are rejected", func(t *testing.T) {
		r := newRegistry(t)

		_, err := r.EnumValues(reflect.TypeFor[twice]())

		assert.ErrorIs(t, err, failure.ErrConfiguration)
		assert.Contains(t, err.Error(), "more than once")
	})

	t.Run("constants of the wrong type are refused", func(t *testing.T) {
		r := newRegistry(t)

		err := r.RegisterEnum(reflect.TypeFor[color](), []any{"red"})

		assert.ErrorIs(t, err, failure.ErrConfiguration)
	})

	t.Run("built-in types cannot be enumerations", func(t *testing.T) {
		r := newRegistry(t)

		err := r.RegisterEnum(reflect.TypeFor[string](), []any{"a"})

		assert.ErrorIs(t, err, failure.ErrConfiguration)
	})

	t.Run("random constant reaches every value", func(t *testing.T) {
		r := newRegistry(t)
		seen := map[level]bool{}
		for range 200 {
			v, err := r.RandomEnum(reflect.TypeFor[level]())
			require.NoError(t, err)
			seen[v.Interface().(level)] = true
		}

		assert.Len(t, seen, 3)
	})
}

func TestCustom(t *testing.T) {
	typ := reflect.TypeFor[money]()

	t.Run("registered generator is used", func(t *testing.T) {
		r := newRegistry(t)
		n := int64(0)
		require.NoError(t, r.Register(typ, func() any {
			n++
			return money{Amount: n, Currency: "EUR"}
		}))

		assert.Equal(t, registry.Other, r.Classify(typ))
		assert.Equal(t, []any{money{1, "EUR"}, money{2, "EUR"}}, draw(t, r, typ, 2))
	})

	t.Run("nil result becomes the zero value", func(t *testing.T) {
		r := newRegistry(t)
		require.NoError(t, r.Register(typ, func() any { return nil }))

		v, err := r.Next(typ)

		require.NoError(t, err)
		assert.Equal(t, money{}, v.Interface())
	})

	t.Run("wrong result type is a configuration error", func(t *testing.T) {
		r := newRegistry(t)
		require.NoError(t, r.Register(typ, func() any { return 3 }))

		_, err := r.Next(typ)

		assert.ErrorIs(t, err, failure.ErrConfiguration)
		assert.Contains(t, err.Error(), "returned int")
	})

	t.Run("panicking generator is reported", func(t *testing.T) {
		r := newRegistry(t)
		cause := errors.New("exhausted")
		require.NoError(t, r.Register(typ, func() any { panic(cause) }))

		_, err := r.Next(typ)

		assert.ErrorIs(t, err, cause)
	})

	t.Run("built-ins cannot be replaced", func(t *testing.T) {
		r := newRegistry(t)

		err := r.Register(reflect.TypeFor[int](), func() any { return 1 })

		assert.ErrorIs(t, err, failure.ErrConfiguration)
	})

	t.Run("custom overrides open handling", func(t *testing.T) {
		r := newRegistry(t)
		nodeType := reflect.TypeFor[*node]()
		fixed := &node{name: "fixed"}
		require.Equal(t, registry.Open, r.Classify(nodeType))

		require.NoError(t, r.Register(nodeType, func() any { return fixed }))
		v, err := r.Next(nodeType)

		require.NoError(t, err)
		assert.Same(t, fixed, v.Interface())
	})
}

func TestDerived(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"duration", reflect.TypeFor[time.Duration]()},
		{"named float", reflect.TypeFor[celsius]()},
		{"named string", reflect.TypeFor[color]()},
		{"named slice", reflect.TypeFor[ids]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, registry.Derived, r.Classify(tt.typ))

			values := draw(t, r, tt.typ, 50)

			for i := 1; i < len(values); i++ {
				assert.False(t, reflect.DeepEqual(values[i-1], values[i]))
			}
			assert.Equal(t, tt.typ, reflect.TypeOf(values[0]))
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("struct pointers are fresh and filled one level deep", func(t *testing.T) {
		r := newRegistry(t)
		typ := reflect.TypeFor[*node]()

		values := draw(t, r, typ, 2)
		a, b := values[0].(*node), values[1].(*node)

		assert.NotSame(t, a, b)
		assert.NotEmpty(t, a.name)
		assert.NotEqual(t, a.name, b.name)
		assert.NotEqual(t, a.count, b.count)
		assert.Nil(t, a.next)
		assert.Nil(t, a.ch)
	})

	t.Run("empty interface yields distinct proxies", func(t *testing.T) {
		r := newRegistry(t)
		typ := reflect.TypeFor[any]()

		values := draw(t, r, typ, 3)

		serials := map[uint64]bool{}
		for _, v := range values {
			p, ok := v.(*registry.Proxy)
			require.True(t, ok)
			serials[p.Serial] = true
		}
		assert.Len(t, serials, 3)
	})

	t.Run("zero-size structs cannot be proxied", func(t *testing.T) {
		r := newRegistry(t)

		_, err := r.Next(reflect.TypeFor[*marker]())

		assert.ErrorIs(t, err, failure.ErrMissingFactory)
	})
}

func TestUnregistered(t *testing.T) {
	r := newRegistry(t)

	for _, typ := range []reflect.Type{
		reflect.TypeFor[chan int](),
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[money](),
		reflect.TypeFor[error](),
		reflect.TypeFor[[3]int](),
	} {
		t.Run(typ.String(), func(t *testing.T) {
			assert.Equal(t, registry.Unregistered, r.Classify(typ))

			_, err := r.Next(typ)

			assert.ErrorIs(t, err, failure.ErrMissingFactory)
			assert.Contains(t, err.Error(), "no factory registered for type "+typ.String())
		})
	}
}

func TestDiagnostics(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Register(reflect.TypeFor[money](), func() any { return money{} }))
	require.NoError(t, r.RegisterEnum(reflect.TypeFor[color](), []any{color("red")}))

	t.Run("describe lists both tables", func(t *testing.T) {
		d := r.Describe()

		assert.Contains(t, d, "built-in factories: ")
		assert.Contains(t, d, "[]*int")
		assert.Contains(t, d, "uuid.UUID")
		assert.Contains(t, d, "registry_test.money (custom)")
		assert.Contains(t, d, "registry_test.color (enumeration)")
	})

	t.Run("describe without custom factories", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(newRegistry(t).Describe(), "custom factories: none"))
	})

	t.Run("entries are grouped and sorted", func(t *testing.T) {
		entries := r.Entries()

		require.NotEmpty(t, entries)
		assert.Equal(t, registry.Standard, entries[0].Category)
		last := entries[len(entries)-1]
		assert.Equal(t, registry.Enumeration, last.Category)
	})

	t.Run("lookup by printed name", func(t *testing.T) {
		typ, ok := r.Lookup("[]*int")

		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[[]*int](), typ)

		_, ok = r.Lookup("chan int")
		assert.False(t, ok)
	})

	t.Run("category names", func(t *testing.T) {
		assert.Equal(t, "standard", registry.Standard.String())
		assert.Equal(t, "custom", registry.Other.String())
		assert.Equal(t, "unregistered", registry.Unregistered.String())
	})
}
