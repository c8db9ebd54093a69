package proptest

import (
	"fmt"
	"pinto/internal/config"
	"pinto/internal/registry"
	"reflect"
	"slices"

	"pgregory.net/rapid"
)

var (
	iterDirGen   = rapid.StringMatching(`[a-z]{8}`)
	seedGen      = rapid.Int64Range(1, 1<<62)
	fieldNameGen = rapid.StringMatching(`[A-Z][a-z]{0,6}`)
	levelGen     = rapid.SampledFrom([]string{"", "debug", "info", "warn", "error"})
)

// StandardType wraps a reflect.Type so rapid prints it by name.
type StandardType struct {
	reflect.Type
}

func (s *StandardType) String() string {
	return s.Type.String()
}

func rangeGen(limit int) *rapid.Generator[config.Range] {
	return rapid.Custom(func(t *rapid.T) config.Range {
		lo := rapid.IntRange(1, limit).Draw(t, "min")
		hi := rapid.IntRange(lo, limit).Draw(t, "max")
		return config.Range{Min: lo, Max: hi}
	})
}

func settingsGen() *rapid.Generator[config.Settings] {
	return rapid.Custom(func(t *rapid.T) config.Settings {
		return config.Settings{
			Seed:            rapid.Int64().Draw(t, "seed"),
			ArrayLength:     rangeGen(maxArrayLength).Draw(t, "arrayLength"),
			StringLength:    rangeGen(maxStringLength).Draw(t, "stringLength"),
			SyntheticFields: rapid.SliceOfNDistinct(fieldNameGen, 0, 3, rapid.ID).Draw(t, "synthetic"),
			LogLevel:        levelGen.Draw(t, "logLevel"),
		}
	})
}

func standardTypeGen(reg *registry.Registry) *rapid.Generator[*StandardType] {
	types := reg.StandardTypes()
	wrapped := make([]*StandardType, len(types))
	for i, typ := range types {
		wrapped[i] = &StandardType{typ}
	}
	return rapid.SampledFrom(wrapped)
}

// structTypeGen builds a struct type with distinct exported field names
// and built-in field types.
func structTypeGen(reg *registry.Registry) *rapid.Generator[reflect.Type] {
	return rapid.Custom(func(t *rapid.T) reflect.Type {
		names := rapid.SliceOfNDistinct(fieldNameGen, 1, maxStructFields, rapid.ID).Draw(t, "fieldNames")
		fields := make([]reflect.StructField, len(names))
		for i, name := range names {
			fields[i] = reflect.StructField{
				Name: name,
				Type: standardTypeGen(reg).Draw(t, fmt.Sprintf("fieldType%d", i)).Type,
			}
		}
		return reflect.StructOf(fields)
	})
}

func fieldSubsetGen(st reflect.Type) *rapid.Generator[[]string] {
	names := make([]string, st.NumField())
	for i := range st.NumField() {
		names[i] = st.Field(i).Name
	}
	return rapid.Custom(func(t *rapid.T) []string {
		return slices.DeleteFunc(slices.Clone(names), func(string) bool {
			return !rapid.Bool().Draw(t, "keep")
		})
	})
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("}}}}"),
		rapid.Just("- - - -"),
		rapid.Just(":::"),
		rapid.Just("[\n["),
		rapid.Just("array_length: [unclosed"),
		rapid.Just("string_length: {unclosed"),
		rapid.Just("- item\n  bad indent"),
		rapid.Just("\t\ttabs: everywhere"),
		rapid.Just("log_level: \"unmatched quote"),
		rapid.StringMatching(`[^a-zA-Z0-9\s]{10,50}`),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(10, 100).Draw(t, "size")
			bytes := make([]byte, size)
			for i := range bytes {
				bytes[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(bytes)
		}),
	)
}

func invalidSettingsGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) string {
			return fmt.Sprintf("array_length:\n  min: %d\n  max: 5\n", rapid.IntRange(-10, 0).Draw(t, "min"))
		}),
		rapid.Custom(func(t *rapid.T) string {
			hi := rapid.IntRange(1, 10).Draw(t, "max")
			return fmt.Sprintf("string_length:\n  min: %d\n  max: %d\n", hi+1, hi)
		}),
		rapid.Just("log_level: chatty\n"),
		rapid.Just("synthetic_fields: [\"  \"]\n"),
		rapid.Just("seed: not_a_number\n"),
	)
}

func partialSettingsGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		r := rangeGen(maxArrayLength).Draw(t, "range")
		key := rapid.SampledFrom([]string{"array_length", "string_length"}).Draw(t, "key")
		return fmt.Sprintf("version: 1\n%s:\n  min: %d\n  max: %d\nunknown_key: ignored\n", key, r.Min, r.Max)
	})
}
