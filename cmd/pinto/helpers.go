package main

import (
	"fmt"
	"pinto/internal/randoms"
	"pinto/internal/registry"
	"reflect"
	"strings"
	"time"
)

func newRegistry(g *Globals, seed int64) *registry.Registry {
	if seed == 0 {
		seed = g.Settings.Seed
	}
	return registry.New(randoms.New(seed),
		registry.WithArrayLength(g.Settings.ArrayLength),
		registry.WithStringLength(g.Settings.StringLength))
}

var timeType = reflect.TypeFor[time.Time]()

// formatValue prints pointers through to their targets so samples show
// what was generated rather than addresses.
func formatValue(v reflect.Value) string {
	switch {
	case v.Kind() == reflect.Pointer:
		if v.IsNil() {
			return "nil"
		}
		return "&" + formatValue(v.Elem())
	case v.Type() == timeType:
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8:
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = formatValue(v.Index(i))
		}
		return "[" + strings.Join(parts, " ") + "]"
	case v.Kind() == reflect.String:
		return fmt.Sprintf("%q", v.String())
	default:
		return fmt.Sprint(v.Interface())
	}
}
