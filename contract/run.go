package contract

import (
	"fmt"
	"log/slog"
	"os"
	"pinto/factory"
	"pinto/internal/config"
	"pinto/internal/failure"
	"pinto/internal/fields"
	"pinto/internal/randoms"
	"pinto/internal/registry"
	"pinto/internal/subtype"
	"reflect"
	"slices"
)

type customFactory struct {
	typ reflect.Type
	fn  factory.Func
}

// options is the state every builder accumulates. It is copied into a run
// when verification starts.
type options struct {
	include  []string
	exclude  []string
	custom   []customFactory
	enums    []factory.Enumeration
	subtyper subtype.Subtyper
	seed     int64
	settings *config.Settings
	logger   *slog.Logger
	strict   bool
}

func (o options) resolveSettings() (config.Settings, error) {
	if o.settings != nil {
		return *o.settings, o.settings.Validate()
	}
	return config.FromEnvironment()
}

type run struct {
	typ    reflect.Type
	src    *randoms.Source
	reg    *registry.Registry
	policy fields.Policy
	log    *slog.Logger
}

func (o options) prepare(typ reflect.Type) (*run, error) {
	settings, err := o.resolveSettings()
	if err != nil {
		return nil, err
	}

	synthetic := append(slices.Clone(fields.Synthetic), settings.SyntheticFields...)
	policy, err := fields.NewPolicy(o.include, o.exclude, synthetic)
	if err != nil {
		return nil, err
	}

	seed := o.seed
	if seed == 0 {
		seed = settings.Seed
	}
	src := randoms.New(seed)

	log := o.logger
	if log == nil {
		log = settings.Logger(os.Stderr)
	}
	log = log.With("type", typ.String(), "seed", src.Seed())

	reg := registry.New(src,
		registry.WithArrayLength(settings.ArrayLength),
		registry.WithStringLength(settings.StringLength))
	for _, c := range o.custom {
		if err := reg.Register(c.typ, c.fn); err != nil {
			return nil, err
		}
	}
	for _, e := range o.enums {
		if err := reg.RegisterEnum(e.Type, e.Values); err != nil {
			return nil, err
		}
	}

	return &run{typ: typ, src: src, reg: reg, policy: policy, log: log}, nil
}

func (r *run) violation(check string, f *reflect.StructField, left, right any, detail string) error {
	v := &failure.Violation{
		Check:  check,
		Type:   r.typ.String(),
		Left:   left,
		Right:  right,
		Detail: detail,
		Seed:   r.src.Seed(),
	}
	if f != nil {
		v.Field = f.Name
	}
	r.log.Debug("contract violated", "check", check, "field", v.Field, "detail", detail)
	return v
}

// next draws a value for f, naming the field when the registry fails.
func (r *run) next(f reflect.StructField) (reflect.Value, error) {
	v, err := r.reg.Next(f.Type)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
	}
	return v, nil
}

func (r *run) isEnum(f reflect.StructField) bool {
	return r.reg.Classify(f.Type) == registry.Enumeration
}

func valueOf[T any](x T) reflect.Value {
	return reflect.ValueOf(&x).Elem()
}

func structPointer(typ reflect.Type) error {
	if typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		return failure.Configf("%s is not a pointer to a struct", typ)
	}
	return nil
}

func defaultSupplier[T any]() (func() T, error) {
	typ := reflect.TypeFor[T]()
	switch typ.Kind() {
	case reflect.Pointer:
		elem := typ.Elem()
		return func() T { return reflect.New(elem).Interface().(T) }, nil
	case reflect.Interface:
		return nil, failure.Configf("cannot construct %s without a supplier", typ)
	}
	return func() T {
		var zero T
		return zero
	}, nil
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// instance calls supplier and rejects nil results.
func instance[T any](supplier func() T) (reflect.Value, error) {
	v := valueOf(supplier())
	if nillable(v.Kind()) && v.IsNil() {
		return reflect.Value{}, failure.Configf("supplier returned a nil %s", v.Type())
	}
	return v, nil
}

// distinctInstances returns two supplier results that are not the same
// pointer.
func distinctInstances[T any](supplier func() T) (reflect.Value, reflect.Value, error) {
	a, err := instance(supplier)
	if err != nil {
		return a, a, err
	}
	b, err := instance(supplier)
	if err != nil {
		return a, b, err
	}
	if a.Pointer() == b.Pointer() {
		return a, b, failure.Configf("supplier must not return the same instance twice")
	}
	return a, b, nil
}
