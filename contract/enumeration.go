package contract

import (
	"fmt"
	"log/slog"
	"pinto/internal/failure"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// EnumCheck verifies that an enumeration is usable: it has constants, none
// repeated, and when it is a fmt.Stringer every constant has its own
// non-blank name.
type EnumCheck[E comparable] struct {
	values []E
	given  bool
	logger *slog.Logger
}

// Enumeration checks the constants returned by E's Values method.
func Enumeration[E comparable]() *EnumCheck[E] {
	return &EnumCheck[E]{}
}

// WithValues checks values instead of calling Values.
func (c *EnumCheck[E]) WithValues(values ...E) *EnumCheck[E] {
	c.values, c.given = values, true
	return c
}

func (c *EnumCheck[E]) WithLogger(l *slog.Logger) *EnumCheck[E] {
	c.logger = l
	return c
}

type valuer[E any] interface {
	Values() []E
}

func (c *EnumCheck[E]) Verify() error {
	const check = "enumeration"
	typ := reflect.TypeFor[E]()
	log := c.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	values := c.values
	if !c.given {
		var zero E
		switch vs := any(zero).(type) {
		case valuer[E]:
			values = vs.Values()
		default:
			p, ok := any(&zero).(valuer[E])
			if !ok {
				return failure.Configf("%s has no Values method and no values were given", typ)
			}
			values = p.Values()
		}
	}

	violation := func(left, right any, detail string) error {
		return &failure.Violation{Check: check, Type: typ.String(), Left: left, Right: right, Detail: detail}
	}
	if len(values) == 0 {
		return violation(nil, nil, "enumeration has no constants")
	}

	seen := make(map[E]int, len(values))
	for i, v := range values {
		if j, dup := seen[v]; dup {
			return violation(j, i, fmt.Sprintf("constant %v is listed more than once", v))
		}
		seen[v] = i
	}

	if _, ok := any(values[0]).(fmt.Stringer); ok {
		names := make(map[string]E, len(values))
		for _, v := range values {
			name := any(v).(fmt.Stringer).String()
			if strings.TrimSpace(name) == "" {
				return violation(v, nil, "constant has a blank name")
			}
			if other, dup := names[name]; dup {
				return violation(other, v, fmt.Sprintf("constants share the name %q", name))
			}
			names[name] = v
		}
	}

	log.Debug("enumeration is usable", "type", typ.String(), "constants", len(values))
	return nil
}

func (c *EnumCheck[E]) Check(t testing.TB) {
	t.Helper()
	require.NoError(t, c.Verify())
}
