package contract

import (
	"fmt"
	"log/slog"
	"pinto/factory"
	"pinto/internal/failure"
	"pinto/internal/fields"
	"pinto/internal/subtype"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// EqualityCheck verifies that Equal and Hash agree with each other and
// depend on every selected field.
type EqualityCheck[T any] struct {
	supplier func() T
	err      error
	opts     options
}

// Equality checks T using fresh zero values from new.
func Equality[T any]() *EqualityCheck[T] {
	supplier, err := defaultSupplier[T]()
	return &EqualityCheck[T]{supplier: supplier, err: err}
}

// EqualityFor checks T using supplier, which must return equal values that
// are never the same pointer.
func EqualityFor[T any](supplier func() T) *EqualityCheck[T] {
	return &EqualityCheck[T]{supplier: supplier}
}

func (c *EqualityCheck[T]) WithSupplier(supplier func() T) *EqualityCheck[T] {
	c.supplier, c.err = supplier, nil
	return c
}

func (c *EqualityCheck[T]) IncludeFields(names ...string) *EqualityCheck[T] {
	c.opts.include = append(c.opts.include, names...)
	return c
}

func (c *EqualityCheck[T]) ExcludeFields(names ...string) *EqualityCheck[T] {
	c.opts.exclude = append(c.opts.exclude, names...)
	return c
}

func (c *EqualityCheck[T]) WithComplexTypeSupplier(typ reflect.Type, fn factory.Func) *EqualityCheck[T] {
	c.opts.custom = append(c.opts.custom, customFactory{typ: typ, fn: fn})
	return c
}

func (c *EqualityCheck[T]) WithEnumeration(e factory.Enumeration) *EqualityCheck[T] {
	c.opts.enums = append(c.opts.enums, e)
	return c
}

// WithSubtyper replaces the default Embedding used for the derived-type
// inequality check.
func (c *EqualityCheck[T]) WithSubtyper(s Subtyper) *EqualityCheck[T] {
	c.opts.subtyper = s
	return c
}

func (c *EqualityCheck[T]) WithSeed(seed int64) *EqualityCheck[T] {
	c.opts.seed = seed
	return c
}

func (c *EqualityCheck[T]) WithSettings(s Settings) *EqualityCheck[T] {
	c.opts.settings = &s
	return c
}

func (c *EqualityCheck[T]) WithLogger(l *slog.Logger) *EqualityCheck[T] {
	c.opts.logger = l
	return c
}

func (c *EqualityCheck[T]) Verify() error {
	if c.err != nil {
		return c.err
	}
	return verifyEquality(c.supplier, c.opts)
}

func (c *EqualityCheck[T]) Check(t testing.TB) {
	t.Helper()
	require.NoError(t, c.Verify())
}

type equalityRun[T any] struct {
	*run
	supplier func() T
	equal    reflect.Method
	hash     reflect.Method
	subtyper subtype.Subtyper
}

func verifyEquality[T any](supplier func() T, o options) error {
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
	equal, err := lookupEqual(typ)
	if err != nil {
		return err
	}
	hash, err := lookupHash(typ)
	if err != nil {
		return err
	}

	v := &equalityRun[T]{run: r, supplier: supplier, equal: equal, hash: hash, subtyper: o.subtyper}
	if v.subtyper == nil {
		v.subtyper = subtype.Embedding{}
	}
	if err := v.checkSupplier(); err != nil {
		return err
	}

	working := r.policy.Select(typ.Elem())
	r.log.Debug("verifying equality", "fields", fields.Names(working))

	if err := v.subtypeInequality(); err != nil {
		return err
	}
	if err := v.nilInequality(); err != nil {
		return err
	}
	if err := v.selfEquality(); err != nil {
		return err
	}
	for _, f := range working {
		if err := v.differentiates(f); err != nil {
			return err
		}
	}
	for _, f := range working {
		if err := v.hashSensitive(f); err != nil {
			return err
		}
	}

	r.log.Debug("equality contract holds")
	return nil
}

func (v *equalityRun[T]) equals(check string, f *reflect.StructField, a, b reflect.Value) (bool, error) {
	eq, err := equalOf(v.equal, a, b)
	if err != nil {
		return false, v.violation(check, f, a.Interface(), b.Interface(), err.Error())
	}
	return eq, nil
}

func (v *equalityRun[T]) hashes(check string, f *reflect.StructField, x reflect.Value) (uint64, error) {
	h, err := hashOf(v.hash, x)
	if err != nil {
		return 0, v.violation(check, f, x.Interface(), nil, err.Error())
	}
	return h, nil
}

func (v *equalityRun[T]) checkSupplier() error {
	a, b, err := distinctInstances(v.supplier)
	if err != nil {
		return err
	}
	eq, err := equalOf(v.equal, a, b)
	if err != nil {
		return failure.Configf("supplier instances cannot be compared: %v", err)
	}
	if !eq {
		return failure.Configf("supplier must produce equal-but-not-same instances")
	}
	return nil
}

func (v *equalityRun[T]) subtypeInequality() error {
	const check = "subtype inequality"
	base, err := instance(v.supplier)
	if err != nil {
		return err
	}

	derived, err := v.subtyper.Subtype(base)
	if err != nil {
		return fmt.Errorf("deriving from %s: %w", v.typ, err)
	}
	if !derived.IsValid() {
		return failure.Configf("subtyper returned no value for %s", v.typ)
	}
	dt := derived.Type()
	if dt == v.typ {
		return v.violation(check, nil, base.Interface(), derived.Interface(), "derived value has the type under test")
	}
	if !subtype.Descends(dt, v.typ) {
		return v.violation(check, nil, base.Interface(), derived.Interface(),
			fmt.Sprintf("%s does not derive from %s", dt, v.typ))
	}

	if dt.AssignableTo(v.equal.Type.In(1)) {
		eq, err := v.equals(check, nil, base, derived)
		if err != nil {
			return err
		}
		if eq {
			return v.violation(check, nil, base.Interface(), derived.Interface(),
				fmt.Sprintf("instance equals a value of derived type %s", dt))
		}
	} else {
		v.log.Debug("Equal cannot accept the derived type", "derived", dt.String())
	}

	if m, ok := dt.MethodByName("Equal"); ok && isEqualMethod(m, v.typ) {
		eq, err := equalOf(m, derived, base)
		if err != nil {
			return v.violation(check, nil, derived.Interface(), base.Interface(), err.Error())
		}
		if eq {
			return v.violation(check, nil, derived.Interface(), base.Interface(),
				fmt.Sprintf("value of derived type %s equals the instance", dt))
		}
	} else {
		v.log.Debug("derived type cannot compare against the instance", "derived", dt.String())
	}
	return nil
}

func (v *equalityRun[T]) nilInequality() error {
	const check = "nil inequality"
	param := v.equal.Type.In(1)
	if !nillable(param.Kind()) {
		v.log.Debug("Equal parameter cannot be nil", "param", param.String())
		return nil
	}
	x, err := instance(v.supplier)
	if err != nil {
		return err
	}
	eq, err := v.equals(check, nil, x, reflect.Zero(param))
	if err != nil {
		return err
	}
	if eq {
		return v.violation(check, nil, x.Interface(), nil, "instance equals nil")
	}
	return nil
}

func (v *equalityRun[T]) selfEquality() error {
	const check = "self equality"
	x, err := instance(v.supplier)
	if err != nil {
		return err
	}
	eq, err := v.equals(check, nil, x, x)
	if err != nil {
		return err
	}
	if !eq {
		return v.violation(check, nil, x.Interface(), x.Interface(), "instance does not equal itself")
	}
	return nil
}

// distinctPair returns two different values for f. Enumeration fields get
// two different constants chosen uniformly among all ordered pairs.
func (v *equalityRun[T]) distinctPair(f reflect.StructField) (reflect.Value, reflect.Value, error) {
	if v.isEnum(f) {
		values, err := v.reg.EnumValues(f.Type)
		if err != nil {
			return reflect.Value{}, reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		i, j, err := v.src.TwoDistinctBelow(len(values))
		if err != nil {
			return reflect.Value{}, reflect.Value{}, failure.Configf(
				"field %s: enumeration %s needs at least two constants to tell instances apart", f.Name, f.Type)
		}
		return values[i], values[j], nil
	}
	a, err := v.next(f)
	if err != nil {
		return a, a, err
	}
	b, err := v.next(f)
	return a, b, err
}

func (v *equalityRun[T]) differentiates(f reflect.StructField) error {
	const check = "field differentiation"
	v.log.Debug("differentiating field", "field", f.Name)

	t1, t2, err := distinctInstances(v.supplier)
	if err != nil {
		return err
	}
	a, b, err := v.distinctPair(f)
	if err != nil {
		return err
	}
	if err := fields.Set(t1, f, a); err != nil {
		return err
	}
	if err := fields.Set(t2, f, b); err != nil {
		return err
	}

	if eq, err := v.equals(check, &f, t1, t2); err != nil {
		return err
	} else if eq {
		return v.violation(check, &f, t1.Interface(), t2.Interface(), "instances differing only in this field are equal")
	}
	if eq, err := v.equals(check, &f, t2, t1); err != nil {
		return err
	} else if eq {
		return v.violation(check, &f, t2.Interface(), t1.Interface(), "equality is not symmetric: the second instance equals the first")
	}

	if err := fields.Copy(t2, t1, f); err != nil {
		return err
	}
	g1, err := fields.Get(t1, f)
	if err != nil {
		return err
	}
	g2, err := fields.Get(t2, f)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(g1.Interface(), g2.Interface()) {
		return v.violation(check, &f, g1.Interface(), g2.Interface(), "field values differ after copying")
	}

	if eq, err := v.equals(check, &f, t1, t2); err != nil {
		return err
	} else if !eq {
		return v.violation(check, &f, t1.Interface(), t2.Interface(), "instances with equal fields are not equal")
	}
	if eq, err := v.equals(check, &f, t2, t1); err != nil {
		return err
	} else if !eq {
		return v.violation(check, &f, t2.Interface(), t1.Interface(), "equality is not symmetric: the second instance does not equal the first")
	}

	h1, err := v.hashes(check, &f, t1)
	if err != nil {
		return err
	}
	h2, err := v.hashes(check, &f, t2)
	if err != nil {
		return err
	}
	if h1 != h2 {
		return v.violation(check, &f, h1, h2, "equal instances have different hash codes")
	}
	return nil
}

// hashSensitive accepts any change of hash code as proof that the field
// takes part in hashing. A hash that happens to collide for the two drawn
// values fails the check.
func (v *equalityRun[T]) hashSensitive(f reflect.StructField) error {
	const check = "hash sensitivity"
	x, err := instance(v.supplier)
	if err != nil {
		return err
	}

	a, err := v.next(f)
	if err != nil {
		return err
	}
	if err := fields.Set(x, f, a); err != nil {
		return err
	}
	h1, err := v.hashes(check, &f, x)
	if err != nil {
		return err
	}

	b, err := v.next(f)
	if err != nil {
		return err
	}
	if err := fields.Set(x, f, b); err != nil {
		return err
	}
	h2, err := v.hashes(check, &f, x)
	if err != nil {
		return err
	}

	if h1 == h2 {
		return v.violation(check, &f, a.Interface(), b.Interface(),
			fmt.Sprintf("hash code %d did not change when the field changed", h1))
	}
	return nil
}
