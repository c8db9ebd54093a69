package fields

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeFor[error]()

// Accessors holds the getter and setter found for a field. Either may be
// nil.
type Accessors struct {
	Getter *reflect.Method
	Setter *reflect.Method
}

func (a Accessors) Both() bool    { return a.Getter != nil && a.Setter != nil }
func (a Accessors) Neither() bool { return a.Getter == nil && a.Setter == nil }

// Lookup finds accessors for f among the methods of typ, which is normally
// a pointer to the struct declaring f.
//
// Getters are Get<Name>, <Name>, or Is<Name> for bool fields, taking no
// arguments and returning one value. Setters are Set<Name>, taking exactly
// the field's type and returning nothing or a single error.
func Lookup(typ reflect.Type, f reflect.StructField) Accessors {
	name := capitalize(f.Name)
	var acc Accessors

	candidates := []string{"Get" + name, name}
	if f.Type.Kind() == reflect.Bool {
		candidates = append(candidates, "Is"+name)
	}
	for _, c := range candidates {
		if m, ok := typ.MethodByName(c); ok && isGetter(m) {
			acc.Getter = &m
			break
		}
	}

	if m, ok := typ.MethodByName("Set" + name); ok && isSetter(m, f.Type) {
		acc.Setter = &m
	}
	return acc
}

func isGetter(m reflect.Method) bool {
	return m.Type.NumIn() == 1 && m.Type.NumOut() == 1
}

func isSetter(m reflect.Method, field reflect.Type) bool {
	mt := m.Type
	if mt.NumIn() != 2 || mt.In(1) != field {
		return false
	}
	switch mt.NumOut() {
	case 0:
		return true
	case 1:
		return mt.Out(0) == errorType
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
