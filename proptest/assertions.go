package proptest

import (
	"pinto/internal/config"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func assertSettingsEqual(t *rapid.T, expected, actual config.Settings) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func assertSameValues(t *rapid.T, inv string, expected, actual reflect.Value) {
	t.Helper()
	if diff := cmp.Diff(expected.Interface(), actual.Interface()); diff != "" {
		t.Fatalf("[%s] violated: values differ (-want +got):\n%s", inv, diff)
	}
}

func assertDiffers(t *rapid.T, inv string, prev, next reflect.Value) {
	t.Helper()
	if cmp.Equal(prev.Interface(), next.Interface()) {
		t.Fatalf("[%s] violated: %s repeated %v", inv, next.Type(), next)
	}
}

func assertNames(t *rapid.T, inv string, expected []string, actual []reflect.StructField) {
	t.Helper()
	names := make([]string, len(actual))
	for i, f := range actual {
		names[i] = f.Name
	}
	if diff := cmp.Diff(expected, names, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("[%s] violated: selected fields (-want +got):\n%s", inv, diff)
	}
}
