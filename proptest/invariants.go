package proptest

import (
	"pinto/internal/config"
	"reflect"
	"unicode/utf8"

	"pgregory.net/rapid"
)

const (
	InvValueHasRequestedType    = "value-has-requested-type"
	InvNeverRepeatsPrevious     = "never-repeats-previous"
	InvFirstValueNotZero        = "first-value-not-zero"
	InvArrayLengthWithinBounds  = "array-length-within-bounds"
	InvStringLengthWithinBounds = "string-length-within-bounds"
	InvStringsAlphanumeric      = "strings-alphanumeric"
	InvSameSeedSameValues       = "same-seed-same-values"
	InvEnumCyclesInOrder        = "enum-cycles-in-order"
	InvSequencerCycles          = "sequencer-cycles"
	InvSelectKeepsOrder         = "select-keeps-declaration-order"
	InvSelectSkipsSynthetic     = "select-skips-synthetic"
	InvSelectHonoursFilter      = "select-honours-filter"
	InvSettingsRoundTrip        = "settings-round-trip"
	InvPartialSettingsDefaulted = "partial-settings-defaulted"
	InvInvalidSettingsRejected  = "invalid-settings-rejected"
	InvDistinctPairDiffers      = "distinct-pair-differs"
)

// verifyGeneratedValue checks the shape of a value drawn for typ under s.
func verifyGeneratedValue(t *rapid.T, typ reflect.Type, v reflect.Value, s config.Settings) {
	if !v.IsValid() || v.Type() != typ {
		t.Fatalf("[%s] violated: asked for %s, got %v", InvValueHasRequestedType, typ, v)
	}
	verifyLengths(t, v, s)
}

func verifyLengths(t *rapid.T, v reflect.Value, s config.Settings) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			t.Fatalf("[%s] violated: nil %s", InvValueHasRequestedType, v.Type())
		}
		verifyLengths(t, v.Elem(), s)
	case reflect.Slice:
		if n := v.Len(); n < s.ArrayLength.Min || n > s.ArrayLength.Max {
			t.Fatalf("[%s] violated: %s of length %d outside %s", InvArrayLengthWithinBounds, v.Type(), n, s.ArrayLength)
		}
		for i := range v.Len() {
			verifyLengths(t, v.Index(i), s)
		}
	case reflect.String:
		str := v.String()
		if n := utf8.RuneCountInString(str); n < s.StringLength.Min || n > s.StringLength.Max {
			t.Fatalf("[%s] violated: %q of length %d outside %s", InvStringLengthWithinBounds, str, n, s.StringLength)
		}
		for _, r := range str {
			if !isAlphanumeric(r) {
				t.Fatalf("[%s] violated: %q contains %q", InvStringsAlphanumeric, str, r)
			}
		}
	}
}

func isAlphanumeric(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
