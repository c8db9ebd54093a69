package contract

import (
	"fmt"
	"pinto/internal/failure"
	"reflect"
)

func invoke(m reflect.Method, args ...reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s panicked: %v", m.Name, p)
		}
	}()
	return m.Func.Call(args), nil
}

func isEqualMethod(m reflect.Method, arg reflect.Type) bool {
	mt := m.Type
	return mt.NumIn() == 2 && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool && arg.AssignableTo(mt.In(1))
}

func lookupEqual(typ reflect.Type) (reflect.Method, error) {
	m, ok := typ.MethodByName("Equal")
	if !ok || !isEqualMethod(m, typ) {
		return reflect.Method{}, failure.Configf("%s has no method Equal(%s) bool", typ, typ)
	}
	return m, nil
}

func lookupHash(typ reflect.Type) (reflect.Method, error) {
	for _, name := range []string{"Hash", "HashCode"} {
		m, ok := typ.MethodByName(name)
		if ok && m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && isInteger(m.Type.Out(0).Kind()) {
			return m, nil
		}
	}
	return reflect.Method{}, failure.Configf("%s has no method Hash() or HashCode() returning an integer", typ)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func hashOf(m reflect.Method, recv reflect.Value) (uint64, error) {
	out, err := invoke(m, recv)
	if err != nil {
		return 0, err
	}
	v := out[0]
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int()), nil
	default:
		return v.Uint(), nil
	}
}

func equalOf(m reflect.Method, recv, arg reflect.Value) (bool, error) {
	out, err := invoke(m, recv, arg)
	if err != nil {
		return false, err
	}
	return out[0].Bool(), nil
}
