package fields

import (
	"fmt"
	"pinto/internal/failure"
	"reflect"
	"unsafe"
)

func recoverAccess(err *error, what string) {
	if r := recover(); r != nil {
		*err = failure.Access(what, fmt.Errorf("%v", r))
	}
}

func accessible(ptr reflect.Value, f reflect.StructField) reflect.Value {
	fv := ptr.Elem().FieldByIndex(f.Index)
	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
}

// Get returns a copy of field f of the struct ptr points to. Unexported
// fields are readable.
func Get(ptr reflect.Value, f reflect.StructField) (v reflect.Value, err error) {
	defer recoverAccess(&err, "read field "+f.Name)
	cp := reflect.New(f.Type).Elem()
	cp.Set(accessible(ptr, f))
	return cp, nil
}

// Set assigns v to field f of the struct ptr points to. Unexported fields
// are writable.
func Set(ptr reflect.Value, f reflect.StructField, v reflect.Value) (err error) {
	defer recoverAccess(&err, "write field "+f.Name)
	accessible(ptr, f).Set(v)
	return nil
}

// Copy assigns field f of src to the same field of dst.
func Copy(dst, src reflect.Value, f reflect.StructField) error {
	v, err := Get(src, f)
	if err != nil {
		return err
	}
	return Set(dst, f, v)
}
