package contract

import (
	"log/slog"
	"pinto/factory"
	"pinto/internal/failure"
	"pinto/internal/fields"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// Randomizer builds instances whose selected fields hold generated values.
// Enumeration fields get a uniformly random constant.
type Randomizer[T any] struct {
	supplier func() T
	err      error
	opts     options
	state    *run
}

func Randomized[T any]() *Randomizer[T] {
	supplier, err := defaultSupplier[T]()
	return &Randomizer[T]{supplier: supplier, err: err}
}

// RandomizedFor fills values from supplier, which must return a new
// pointer on every call.
func RandomizedFor[T any](supplier func() T) *Randomizer[T] {
	return &Randomizer[T]{supplier: supplier}
}

func (c *Randomizer[T]) reset() *Randomizer[T] {
	c.state = nil
	return c
}

func (c *Randomizer[T]) WithSupplier(supplier func() T) *Randomizer[T] {
	c.supplier, c.err = supplier, nil
	return c.reset()
}

func (c *Randomizer[T]) IncludeFields(names ...string) *Randomizer[T] {
	c.opts.include = append(c.opts.include, names...)
	return c.reset()
}

func (c *Randomizer[T]) ExcludeFields(names ...string) *Randomizer[T] {
	c.opts.exclude = append(c.opts.exclude, names...)
	return c.reset()
}

func (c *Randomizer[T]) WithComplexTypeSupplier(typ reflect.Type, fn factory.Func) *Randomizer[T] {
	c.opts.custom = append(c.opts.custom, customFactory{typ: typ, fn: fn})
	return c.reset()
}

func (c *Randomizer[T]) WithEnumeration(e factory.Enumeration) *Randomizer[T] {
	c.opts.enums = append(c.opts.enums, e)
	return c.reset()
}

func (c *Randomizer[T]) WithSeed(seed int64) *Randomizer[T] {
	c.opts.seed = seed
	return c.reset()
}

func (c *Randomizer[T]) WithSettings(s Settings) *Randomizer[T] {
	c.opts.settings = &s
	return c.reset()
}

func (c *Randomizer[T]) WithLogger(l *slog.Logger) *Randomizer[T] {
	c.opts.logger = l
	return c.reset()
}

// Get returns a new instance. Generator state carries across calls, so
// consecutive instances differ in every non-enumeration field.
func (c *Randomizer[T]) Get() (T, error) {
	var zero T
	if c.err != nil {
		return zero, c.err
	}
	typ := reflect.TypeFor[T]()
	if err := structPointer(typ); err != nil {
		return zero, err
	}
	if c.supplier == nil {
		return zero, failure.Configf("supplier must not be nil")
	}
	if c.state == nil {
		r, err := c.opts.prepare(typ)
		if err != nil {
			return zero, err
		}
		c.state = r
	}
	r := c.state

	_, x, err := distinctInstances(c.supplier)
	if err != nil {
		return zero, err
	}
	for _, f := range r.policy.Select(typ.Elem()) {
		var val reflect.Value
		if r.isEnum(f) {
			val, err = r.reg.RandomEnum(f.Type)
		} else {
			val, err = r.next(f)
		}
		if err != nil {
			return zero, err
		}
		if err := fields.Set(x, f, val); err != nil {
			return zero, err
		}
	}
	r.log.Debug("randomized instance")
	return x.Interface().(T), nil
}

func (c *Randomizer[T]) MustGet(t testing.TB) T {
	t.Helper()
	v, err := c.Get()
	require.NoError(t, err)
	return v
}
