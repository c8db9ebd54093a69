package subtype

import (
	"fmt"
	"pinto/internal/failure"
	"reflect"
)

// Subtyper derives a value from base, a non-nil pointer to a struct. The
// result must have a different type that Descends from base's type.
type Subtyper interface {
	Subtype(base reflect.Value) (reflect.Value, error)
}

type Func func(base reflect.Value) (reflect.Value, error)

func (f Func) Subtype(base reflect.Value) (reflect.Value, error) {
	return f(base)
}

// Embedding builds a pointer to struct{ Base S } holding a copy of *base.
// The wrapper has no methods of its own.
type Embedding struct{}

func (Embedding) Subtype(base reflect.Value) (derived reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = failure.Access("derive from "+base.Type().String(), fmt.Errorf("%v", r))
		}
	}()

	if base.Kind() != reflect.Pointer || base.Type().Elem().Kind() != reflect.Struct || base.IsNil() {
		return reflect.Value{}, failure.Configf("cannot derive from %s, need a non-nil struct pointer", base.Type())
	}
	st := reflect.StructOf([]reflect.StructField{{Name: "Base", Type: base.Type().Elem()}})
	derived = reflect.New(st)
	derived.Elem().Field(0).Set(base.Elem())
	return derived, nil
}

// Descends reports whether derived wraps base: after dereferencing
// pointers, derived is a struct with an embedded field or a field named
// Base whose type is base or the struct base points to.
func Descends(derived, base reflect.Type) bool {
	if derived == base {
		return false
	}
	st := derived
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return false
	}
	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous && f.Name != "Base" {
			continue
		}
		if f.Type == base || (base.Kind() == reflect.Pointer && f.Type == base.Elem()) {
			return true
		}
	}
	return false
}
