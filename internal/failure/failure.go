package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration     = errors.New("invalid configuration")
	ErrMissingFactory    = errors.New("no factory registered")
	ErrContractViolation = errors.New("contract violated")
	ErrReflectiveAccess  = errors.New("reflective access failed")
)

// Configf reports caller misuse detected before any value is generated.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func Access(what string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrReflectiveAccess, what, cause)
}

// Violation is a failed contract assertion. Left and Right hold the two
// compared values or instances when the check has them.
type Violation struct {
	Check  string
	Type   string
	Field  string
	Left   any
	Right  any
	Detail string
	Seed   int64
}

func (v *Violation) Error() string {
	var b strings.Builder
	b.WriteString(v.Check)
	if v.Type != "" {
		fmt.Fprintf(&b, " on %s", v.Type)
	}
	if v.Field != "" {
		fmt.Fprintf(&b, " field [%s]", v.Field)
	}
	b.WriteString(": ")
	b.WriteString(v.Detail)
	if v.Left != nil || v.Right != nil {
		fmt.Fprintf(&b, "\n  left:  %+v\n  right: %+v", v.Left, v.Right)
	}
	if v.Seed != 0 {
		fmt.Fprintf(&b, "\n  seed:  %d", v.Seed)
	}
	return b.String()
}

func (v *Violation) Unwrap() error {
	return ErrContractViolation
}
