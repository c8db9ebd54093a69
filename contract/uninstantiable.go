package contract

import (
	"fmt"
	"log/slog"
	"pinto/internal/failure"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// UninstantiableCheck verifies that a constructor refuses to build a T,
// either by panicking or by returning an error.
type UninstantiableCheck[T any] struct {
	construct func() (T, error)
	logger    *slog.Logger
}

// Uninstantiable checks a constructor that is expected to panic.
func Uninstantiable[T any](construct func() T) *UninstantiableCheck[T] {
	c := &UninstantiableCheck[T]{}
	if construct != nil {
		c.construct = func() (T, error) { return construct(), nil }
	}
	return c
}

// UninstantiableE checks a constructor that is expected to panic or fail.
func UninstantiableE[T any](construct func() (T, error)) *UninstantiableCheck[T] {
	return &UninstantiableCheck[T]{construct: construct}
}

func (c *UninstantiableCheck[T]) WithLogger(l *slog.Logger) *UninstantiableCheck[T] {
	c.logger = l
	return c
}

func (c *UninstantiableCheck[T]) Verify() error {
	typ := reflect.TypeFor[T]()
	if c.construct == nil {
		return failure.Configf("uninstantiable check on %s needs a constructor", typ)
	}
	log := c.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	x, recovered, err := c.attempt()
	switch {
	case recovered != nil:
		log.Debug("constructor refused", "type", typ.String(), "panic", fmt.Sprint(recovered))
		return nil
	case err != nil:
		log.Debug("constructor refused", "type", typ.String(), "err", err)
		return nil
	}
	return &failure.Violation{
		Check:  "uninstantiable",
		Type:   typ.String(),
		Left:   x,
		Detail: "constructor returned an instance instead of panicking or failing",
	}
}

func (c *UninstantiableCheck[T]) attempt() (x T, recovered any, err error) {
	defer func() {
		recovered = recover()
	}()
	x, err = c.construct()
	return x, nil, err
}

func (c *UninstantiableCheck[T]) Check(t testing.TB) {
	t.Helper()
	require.NoError(t, c.Verify())
}
