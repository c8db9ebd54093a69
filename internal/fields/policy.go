package fields

import (
	"maps"
	"pinto/internal/failure"
	"reflect"
	"slices"
)

// Synthetic lists field names that are never mutated: blank padding, vet's
// noCopy guard and the bookkeeping fields generated protobuf messages carry.
var Synthetic = []string{
	"_",
	"noCopy",
	"sizeCache",
	"unknownFields",
	"XXX_NoUnkeyedLiteral",
	"XXX_unrecognized",
	"XXX_sizecache",
}

// Policy decides which struct fields a verification pass touches.
type Policy struct {
	include   map[string]bool
	exclude   map[string]bool
	synthetic map[string]bool
}

func NewPolicy(include, exclude, synthetic []string) (Policy, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return Policy{}, failure.Configf(
			"cannot both include and exclude fields, use one or the other: include %v, exclude %v",
			include, exclude)
	}
	return Policy{
		include:   toSet(include),
		exclude:   toSet(exclude),
		synthetic: toSet(synthetic),
	}, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Select returns the working fields of st in declaration order.
func (p Policy) Select(st reflect.Type) []reflect.StructField {
	var out []reflect.StructField
	for i := range st.NumField() {
		f := st.Field(i)
		if p.synthetic[f.Name] {
			continue
		}
		if len(p.include) > 0 {
			if p.include[f.Name] {
				out = append(out, f)
			}
			continue
		}
		if !p.exclude[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

func (p Policy) Included() []string { return slices.Sorted(maps.Keys(p.include)) }
func (p Policy) Excluded() []string { return slices.Sorted(maps.Keys(p.exclude)) }

func Names(fs []reflect.StructField) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}
