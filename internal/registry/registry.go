package registry

import (
	"fmt"
	"pinto/internal/config"
	"pinto/internal/cyclic"
	"pinto/internal/failure"
	"pinto/internal/fields"
	"pinto/internal/randoms"
	"reflect"
	"slices"
	"strings"
)

type Generator interface {
	Next() (reflect.Value, error)
}

type GeneratorFunc func() (reflect.Value, error)

func (f GeneratorFunc) Next() (reflect.Value, error) { return f() }

type Option func(*Registry)

func WithArrayLength(r config.Range) Option {
	return func(reg *Registry) { reg.arrayLen = r }
}

func WithStringLength(r config.Range) Option {
	return func(reg *Registry) { reg.stringLen = r }
}

type Proxy struct {
	Serial uint64
	Token  string
}

// Registry is not safe for concurrent use.
type Registry struct {
	src       *randoms.Source
	arrayLen  config.Range
	stringLen config.Range

	standard map[reflect.Type]Generator
	custom   map[reflect.Type]func() any
	enums    map[reflect.Type][]reflect.Value
	cache    map[reflect.Type]Generator
	proxies  uint64
}

func New(src *randoms.Source, opts ...Option) *Registry {
	defaults := config.Default()
	r := &Registry{
		src:       src,
		arrayLen:  defaults.ArrayLength,
		stringLen: defaults.StringLength,
		standard:  make(map[reflect.Type]Generator),
		custom:    make(map[reflect.Type]func() any),
		enums:     make(map[reflect.Type][]reflect.Value),
		cache:     make(map[reflect.Type]Generator),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.addStandard()
	return r
}

func (r *Registry) Source() *randoms.Source {
	return r.src
}

func (r *Registry) Register(t reflect.Type, fn func() any) error {
	if t == nil || fn == nil {
		return failure.Configf("a custom factory needs both a type and a generator")
	}
	if _, ok := r.standard[t]; ok {
		return failure.Configf("cannot replace the built-in factory for %s", t)
	}
	r.custom[t] = fn
	delete(r.cache, t)
	return nil
}

// RegisterEnum declares the constants of t. Every value must have type t.
func (r *Registry) RegisterEnum(t reflect.Type, values []any) error {
	if t == nil {
		return failure.Configf("an enumeration needs a type")
	}
	if _, ok := r.standard[t]; ok {
		return failure.Configf("built-in type %s cannot be an enumeration", t)
	}
	vs := make([]reflect.Value, len(values))
	for i, v := range values {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Type() != t {
			return failure.Configf("enumeration %s: constant %d has type %T", t, i, v)
		}
		vs[i] = rv
	}
	r.enums[t] = vs
	delete(r.cache, t)
	return nil
}

func (r *Registry) Classify(t reflect.Type) Category {
	switch {
	case r.standard[t] != nil:
		return Standard
	case r.isEnum(t):
		return Enumeration
	case r.custom[t] != nil:
		return Other
	case r.derivedBase(t) != nil:
		return Derived
	case isOpen(t):
		return Open
	default:
		return Unregistered
	}
}

// For returns the generator for t, creating it on first use. Generators
// are kept for the lifetime of the registry so their state carries across
// calls.
func (r *Registry) For(t reflect.Type) (Generator, error) {
	if g, ok := r.cache[t]; ok {
		return g, nil
	}

	var g Generator
	switch r.Classify(t) {
	case Standard:
		g = r.standard[t]
	case Enumeration:
		values, err := r.EnumValues(t)
		if err != nil {
			return nil, err
		}
		seq, err := cyclic.New(len(values))
		if err != nil {
			return nil, err
		}
		g = GeneratorFunc(func() (reflect.Value, error) {
			return values[seq.Next()], nil
		})
	case Other:
		g = r.customGenerator(t, r.custom[t])
	case Derived:
		g = r.derivedGenerator(t)
	case Open:
		g = r.openGenerator(t)
	default:
		return nil, fmt.Errorf("%w for type %s", failure.ErrMissingFactory, t)
	}

	r.cache[t] = g
	return g, nil
}

func (r *Registry) Next(t reflect.Type) (reflect.Value, error) {
	g, err := r.For(t)
	if err != nil {
		return reflect.Value{}, err
	}
	return g.Next()
}

func (r *Registry) customGenerator(t reflect.Type, fn func() any) Generator {
	return GeneratorFunc(func() (v reflect.Value, err error) {
		defer func() {
			if p := recover(); p != nil {
				if perr, ok := p.(error); ok {
					err = fmt.Errorf("factory for %s panicked: %w", t, perr)
					return
				}
				err = failure.Configf("factory for %s panicked: %v", t, p)
			}
		}()

		out := fn()
		if out == nil {
			return reflect.Zero(t), nil
		}
		v = reflect.ValueOf(out)
		if !v.Type().AssignableTo(t) {
			return reflect.Value{}, failure.Configf("factory for %s returned %s", t, v.Type())
		}
		return v, nil
	})
}

func (r *Registry) derivedBase(t reflect.Type) reflect.Type {
	if t.Name() == "" {
		return nil
	}
	var base reflect.Type
	switch t.Kind() {
	case reflect.Slice:
		base = reflect.SliceOf(t.Elem())
	default:
		base = scalarKinds[t.Kind()]
	}
	if base == nil || base == t || r.standard[base] == nil {
		return nil
	}
	return base
}

func (r *Registry) derivedGenerator(t reflect.Type) Generator {
	base := r.standard[r.derivedBase(t)]
	return GeneratorFunc(func() (reflect.Value, error) {
		v, err := base.Next()
		if err != nil {
			return reflect.Value{}, err
		}
		return v.Convert(t), nil
	})
}

func isOpen(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct && t.Elem().Size() > 0
	case reflect.Interface:
		return t.NumMethod() == 0
	}
	return false
}

func (r *Registry) openGenerator(t reflect.Type) Generator {
	if t.Kind() == reflect.Interface {
		return GeneratorFunc(func() (reflect.Value, error) {
			r.proxies++
			p := &Proxy{Serial: r.proxies, Token: r.src.Alphanumeric(16)}
			return reflect.ValueOf(p), nil
		})
	}
	return GeneratorFunc(func() (reflect.Value, error) {
		ptr := reflect.New(t.Elem())
		if err := r.fillShallow(ptr); err != nil {
			return reflect.Value{}, err
		}
		return ptr, nil
	})
}

// fillShallow sets every field of *ptr whose type resolves without
// building another proxy, so proxies of the same type rarely compare equal.
func (r *Registry) fillShallow(ptr reflect.Value) error {
	st := ptr.Type().Elem()
	for i := range st.NumField() {
		f := st.Field(i)
		if f.Name == "_" {
			continue
		}
		switch r.Classify(f.Type) {
		case Standard, Enumeration, Other, Derived:
		default:
			continue
		}
		v, err := r.Next(f.Type)
		if err != nil {
			return fmt.Errorf("proxy %s field %s: %w", st, f.Name, err)
		}
		if err := fields.Set(ptr, f, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) isEnum(t reflect.Type) bool {
	if _, ok := r.enums[t]; ok {
		return true
	}
	_, ok := valuesMethod(t)
	return ok
}

// valuesMethod finds a Values() []T method on T or *T.
func valuesMethod(t reflect.Type) (func() reflect.Value, bool) {
	want := reflect.SliceOf(t)
	ok := func(m reflect.Method) bool {
		return m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == want
	}
	if m, found := t.MethodByName("Values"); found && ok(m) {
		return func() reflect.Value { return reflect.Zero(t).Method(m.Index).Call(nil)[0] }, true
	}
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer {
		return nil, false
	}
	pt := reflect.PointerTo(t)
	if m, found := pt.MethodByName("Values"); found && ok(m) {
		return func() reflect.Value { return reflect.New(t).Method(m.Index).Call(nil)[0] }, true
	}
	return nil, false
}

// EnumValues returns the constants of enumeration t, which must be
// non-empty and free of duplicates.
func (r *Registry) EnumValues(t reflect.Type) ([]reflect.Value, error) {
	values, ok := r.enums[t]
	if !ok {
		call, found := valuesMethod(t)
		if !found {
			return nil, failure.Configf("%s is not an enumeration", t)
		}
		var err error
		if values, err = callValues(t, call); err != nil {
			return nil, err
		}
	}
	if len(values) == 0 {
		return nil, failure.Configf("enumeration %s has no constants", t)
	}
	if t.Comparable() {
		seen := make(map[any]bool, len(values))
		for _, v := range values {
			key := v.Interface()
			if seen[key] {
				return nil, failure.Configf("enumeration %s lists constant %v more than once", t, key)
			}
			seen[key] = true
		}
	}
	return values, nil
}

func callValues(t reflect.Type, call func() reflect.Value) (values []reflect.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = failure.Configf("%s.Values panicked: %v", t, p)
		}
	}()
	list := call()
	values = make([]reflect.Value, list.Len())
	for i := range values {
		values[i] = list.Index(i)
	}
	return values, nil
}

func (r *Registry) RandomEnum(t reflect.Type) (reflect.Value, error) {
	values, err := r.EnumValues(t)
	if err != nil {
		return reflect.Value{}, err
	}
	return randoms.Element(r.src, values), nil
}

type Entry struct {
	Type     string
	Category Category
}

func (r *Registry) Entries() []Entry {
	var out []Entry
	add := func(c Category, types []reflect.Type) {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		slices.Sort(names)
		for _, n := range names {
			out = append(out, Entry{Type: n, Category: c})
		}
	}
	add(Standard, keys(r.standard))
	add(Other, keys(r.custom))
	add(Enumeration, keys(r.enums))
	return out
}

func keys[V any](m map[reflect.Type]V) []reflect.Type {
	out := make([]reflect.Type, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	return out
}

func (r *Registry) StandardTypes() []reflect.Type {
	types := keys(r.standard)
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// Lookup finds a built-in type by its printed name, such as "[]*int".
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	for t := range r.standard {
		if t.String() == name {
			return t, true
		}
	}
	return nil, false
}

// Describe renders the built-in and custom factory tables for error
// reports.
func (r *Registry) Describe() string {
	var b strings.Builder
	var builtin, custom []string
	for _, e := range r.Entries() {
		if e.Category == Standard {
			builtin = append(builtin, e.Type)
		} else {
			custom = append(custom, fmt.Sprintf("%s (%s)", e.Type, e.Category))
		}
	}
	fmt.Fprintf(&b, "built-in factories: %s\n", strings.Join(builtin, ", "))
	if len(custom) == 0 {
		b.WriteString("custom factories: none")
	} else {
		fmt.Fprintf(&b, "custom factories: %s", strings.Join(custom, ", "))
	}
	return b.String()
}
