package contract

import (
	"errors"
	"fmt"
	"log/slog"
	"pinto/factory"
	"pinto/internal/failure"
	"pinto/internal/fields"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// AccessorCheck verifies that getters and setters round-trip values.
type AccessorCheck[T any] struct {
	supplier func() T
	err      error
	opts     options
}

func Accessors[T any]() *AccessorCheck[T] {
	supplier, err := defaultSupplier[T]()
	return &AccessorCheck[T]{supplier: supplier, err: err}
}

func AccessorsFor[T any](supplier func() T) *AccessorCheck[T] {
	return &AccessorCheck[T]{supplier: supplier}
}

func (c *AccessorCheck[T]) WithSupplier(supplier func() T) *AccessorCheck[T] {
	c.supplier, c.err = supplier, nil
	return c
}

func (c *AccessorCheck[T]) IncludeFields(names ...string) *AccessorCheck[T] {
	c.opts.include = append(c.opts.include, names...)
	return c
}

func (c *AccessorCheck[T]) ExcludeFields(names ...string) *AccessorCheck[T] {
	c.opts.exclude = append(c.opts.exclude, names...)
	return c
}

func (c *AccessorCheck[T]) WithComplexTypeSupplier(typ reflect.Type, fn factory.Func) *AccessorCheck[T] {
	c.opts.custom = append(c.opts.custom, customFactory{typ: typ, fn: fn})
	return c
}

func (c *AccessorCheck[T]) WithEnumeration(e factory.Enumeration) *AccessorCheck[T] {
	c.opts.enums = append(c.opts.enums, e)
	return c
}

// Strict requires every selected field to have both a getter and a setter.
func (c *AccessorCheck[T]) Strict(strict bool) *AccessorCheck[T] {
	c.opts.strict = strict
	return c
}

func (c *AccessorCheck[T]) WithSeed(seed int64) *AccessorCheck[T] {
	c.opts.seed = seed
	return c
}

func (c *AccessorCheck[T]) WithSettings(s Settings) *AccessorCheck[T] {
	c.opts.settings = &s
	return c
}

func (c *AccessorCheck[T]) WithLogger(l *slog.Logger) *AccessorCheck[T] {
	c.opts.logger = l
	return c
}

func (c *AccessorCheck[T]) Verify() error {
	if c.err != nil {
		return c.err
	}
	return verifyAccessors(c.supplier, c.opts)
}

func (c *AccessorCheck[T]) Check(t testing.TB) {
	t.Helper()
	require.NoError(t, c.Verify())
}

func verifyAccessors[T any](supplier func() T, o options) error {
	typ := reflect.TypeFor[T]()
	if err := structPointer(typ); err != nil {
		return err
	}
	if supplier == nil {
		return failure.Configf("supplier must not be nil")
	}
	r, err := o.prepare(typ)
	if err != nil {
		return err
	}

	working := r.policy.Select(typ.Elem())
	r.log.Debug("verifying accessors", "fields", fields.Names(working), "strict", o.strict)

	for _, f := range working {
		acc := fields.Lookup(typ, f)
		if o.strict && !acc.Both() {
			return r.violation("accessors", &f, nil, nil,
				fmt.Sprintf("all included fields must have both setters and getters and field [%s] did not", f.Name))
		}
		if acc.Neither() {
			r.log.Debug("field has no accessors", "field", f.Name)
			continue
		}
		if err := roundTrip(r, supplier, f, acc); err != nil {
			return err
		}
	}

	r.log.Debug("accessor contract holds")
	return nil
}

func roundTrip[T any](r *run, supplier func() T, f reflect.StructField, acc fields.Accessors) error {
	const check = "accessor round trip"
	val, err := r.reg.Next(f.Type)
	if errors.Is(err, failure.ErrMissingFactory) {
		return fmt.Errorf("field %s of type %s: %w\n%s", f.Name, f.Type, err, r.reg.Describe())
	}
	if err != nil {
		return fmt.Errorf("field %s: %w", f.Name, err)
	}

	x, err := instance(supplier)
	if err != nil {
		return err
	}

	if acc.Setter != nil {
		out, err := invoke(*acc.Setter, x, val)
		if err != nil {
			return r.violation(check, &f, val.Interface(), nil, err.Error())
		}
		if len(out) == 1 && !out[0].IsNil() {
			return r.violation(check, &f, val.Interface(), nil,
				fmt.Sprintf("%s returned an error: %v", acc.Setter.Name, out[0].Interface()))
		}
	} else if err := fields.Set(x, f, val); err != nil {
		return err
	}

	var got reflect.Value
	if acc.Getter != nil {
		out, err := invoke(*acc.Getter, x)
		if err != nil {
			return r.violation(check, &f, val.Interface(), nil, err.Error())
		}
		got = out[0]
	} else if got, err = fields.Get(x, f); err != nil {
		return err
	}

	want, have := val.Interface(), got.Interface()
	if !cmp.Equal(want, have, exportAll) {
		return r.violation(check, &f, want, have,
			"value read back differs from value written (-written +read):\n"+cmp.Diff(want, have, exportAll))
	}
	return nil
}
