package contract

import (
	"fmt"
	"log/slog"
	"pinto/internal/failure"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

var addressForm = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)

// identityForm matches "<type>@<hex>" where <type> is how t prints, with
// or without its pointer stars, or its bare name.
func identityForm(t reflect.Type) *regexp.Regexp {
	full := t.String()
	names := []string{regexp.QuoteMeta(full), regexp.QuoteMeta(strings.TrimLeft(full, "*"))}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		names = append(names, regexp.QuoteMeta(t.Name()))
	}
	return regexp.MustCompile(`^(?:` + strings.Join(names, "|") + `)@(?:0x)?[0-9a-fA-F]+$`)
}

// StringCheck verifies that String returns something meaningful.
type StringCheck[T any] struct {
	supplier  func() T
	err       error
	instances []T
	logger    *slog.Logger
}

func Stringer[T any]() *StringCheck[T] {
	supplier, err := defaultSupplier[T]()
	return &StringCheck[T]{supplier: supplier, err: err}
}

func StringerFor[T any](supplier func() T) *StringCheck[T] {
	return &StringCheck[T]{supplier: supplier}
}

func StringerOf[T any](instances ...T) *StringCheck[T] {
	return &StringCheck[T]{instances: instances}
}

func (c *StringCheck[T]) WithSupplier(supplier func() T) *StringCheck[T] {
	c.supplier, c.err = supplier, nil
	return c
}

func (c *StringCheck[T]) WithInstances(instances ...T) *StringCheck[T] {
	c.instances = append(c.instances, instances...)
	return c
}

func (c *StringCheck[T]) WithLogger(l *slog.Logger) *StringCheck[T] {
	c.logger = l
	return c
}

func (c *StringCheck[T]) Verify() error {
	typ := reflect.TypeFor[T]()
	log := c.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("type", typ.String())

	subjects := c.instances
	if len(subjects) == 0 {
		if c.err != nil {
			return c.err
		}
		if c.supplier == nil {
			return failure.Configf("string check needs instances or a supplier")
		}
		subjects = []T{c.supplier()}
	}

	for i, s := range subjects {
		if err := checkString(typ, i, s); err != nil {
			log.Debug("contract violated", "instance", i, "err", err)
			return err
		}
	}
	log.Debug("string form contract holds", "instances", len(subjects))
	return nil
}

func (c *StringCheck[T]) Check(t testing.TB) {
	t.Helper()
	require.NoError(t, c.Verify())
}

func checkString[T any](typ reflect.Type, i int, s T) error {
	const check = "string form"
	violation := func(detail string, value any) error {
		return &failure.Violation{Check: check, Type: typ.String(), Left: value, Detail: fmt.Sprintf("instance %d: %s", i, detail)}
	}

	v := valueOf(s)
	if typ.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if nillable(v.Kind()) && v.IsNil() {
		return violation("instance is nil", nil)
	}

	str, ok := any(s).(fmt.Stringer)
	if !ok {
		return violation("has no String method and prints in the default format", nil)
	}
	out, err := callString(str)
	if err != nil {
		return violation(err.Error(), nil)
	}
	if addressForm.MatchString(out) || identityForm(v.Type()).MatchString(out) {
		return violation(fmt.Sprintf("String returns the identity-based form %q", out), out)
	}
	if strings.TrimFunc(out, isBlank) == "" {
		return violation(fmt.Sprintf("String returns the blank string %q", out), out)
	}
	return nil
}

func isBlank(r rune) bool {
	return r == 0 || unicode.IsSpace(r)
}

func callString(s fmt.Stringer) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("String panicked: %v", p)
		}
	}()
	return s.String(), nil
}
