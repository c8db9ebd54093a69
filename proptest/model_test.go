package proptest

import (
	"pinto/internal/config"
	"pinto/internal/cyclic"
	"pinto/internal/registry"
	"reflect"

	"pgregory.net/rapid"
)

type tone int

var toneType = reflect.TypeFor[tone]()

type drawn struct {
	typ   reflect.Type
	value reflect.Value
}

// RegistryModel remembers the previous value per type, the position of
// each enumeration cycle and every draw in order.
type RegistryModel struct {
	last     map[reflect.Type]reflect.Value
	enums    map[reflect.Type][]any
	enumNext map[reflect.Type]int
	history  []drawn
}

func newRegistryModel() *RegistryModel {
	return &RegistryModel{
		last:     make(map[reflect.Type]reflect.Value),
		enums:    make(map[reflect.Type][]any),
		enumNext: make(map[reflect.Type]int),
	}
}

func (m *RegistryModel) RegisterEnum(t reflect.Type, values []any) {
	m.enums[t] = values
	m.enumNext[t] = 0
}

// ExpectEnum returns the constant the next draw of t must produce.
func (m *RegistryModel) ExpectEnum(t reflect.Type) any {
	values := m.enums[t]
	v := values[m.enumNext[t]]
	m.enumNext[t] = (m.enumNext[t] + 1) % len(values)
	return v
}

func (m *RegistryModel) Previous(t reflect.Type) (reflect.Value, bool) {
	v, ok := m.last[t]
	return v, ok
}

func (m *RegistryModel) Record(t reflect.Type, v reflect.Value) {
	m.last[t] = v
	m.history = append(m.history, drawn{typ: t, value: v})
}

type CheckedRegistry struct {
	real     *registry.Registry
	model    *RegistryModel
	settings config.Settings
	t        *rapid.T
}

func NewCheckedRegistry(t *rapid.T, reg *registry.Registry, s config.Settings) *CheckedRegistry {
	return &CheckedRegistry{
		real:     reg,
		model:    newRegistryModel(),
		settings: s,
		t:        t,
	}
}

func (c *CheckedRegistry) Model() *RegistryModel {
	return c.model
}

func (c *CheckedRegistry) Next(t reflect.Type) reflect.Value {
	v, err := c.real.Next(t)
	if err != nil {
		c.t.Fatalf("Next(%s) failed: %v", t, err)
	}
	verifyGeneratedValue(c.t, t, v, c.settings)

	if prev, ok := c.model.Previous(t); ok {
		assertDiffers(c.t, InvNeverRepeatsPrevious, prev, v)
	} else if v.Kind() != reflect.Slice && v.Kind() != reflect.Pointer && v.IsZero() {
		c.t.Fatalf("[%s] violated: first %s was the zero value", InvFirstValueNotZero, t)
	}
	c.model.Record(t, v)
	return v
}

func (c *CheckedRegistry) RegisterEnum(t reflect.Type, values []any) {
	if err := c.real.RegisterEnum(t, values); err != nil {
		c.t.Fatalf("RegisterEnum(%s) failed: %v", t, err)
	}
	c.model.RegisterEnum(t, values)
}

func (c *CheckedRegistry) NextEnum(t reflect.Type) reflect.Value {
	v, err := c.real.Next(t)
	if err != nil {
		c.t.Fatalf("Next(%s) failed: %v", t, err)
	}
	if want := c.model.ExpectEnum(t); v.Interface() != want {
		c.t.Fatalf("[%s] violated: got %v, want %v", InvEnumCyclesInOrder, v, want)
	}
	c.model.history = append(c.model.history, drawn{typ: t, value: v})
	return v
}

// Replay draws the recorded sequence of types from reg and compares every
// value with the recorded one.
func (c *CheckedRegistry) Replay(reg *registry.Registry) {
	for t, values := range c.model.enums {
		if err := reg.RegisterEnum(t, values); err != nil {
			c.t.Fatalf("RegisterEnum(%s) on replay failed: %v", t, err)
		}
	}
	for i, d := range c.model.history {
		v, err := reg.Next(d.typ)
		if err != nil {
			c.t.Fatalf("replay draw %d of %s failed: %v", i, d.typ, err)
		}
		assertSameValues(c.t, InvSameSeedSameValues, d.value, v)
	}
}

type CheckedSequencer struct {
	real  *cyclic.Sequencer
	calls int
	t     *rapid.T
}

func NewCheckedSequencer(t *rapid.T, n int) *CheckedSequencer {
	seq, err := cyclic.New(n)
	if err != nil {
		t.Fatalf("cyclic.New(%d) failed: %v", n, err)
	}
	return &CheckedSequencer{real: seq, t: t}
}

func (c *CheckedSequencer) Next() int {
	got := c.real.Next()
	if want := c.calls % c.real.Len(); got != want {
		c.t.Fatalf("[%s] violated: call %d returned %d, want %d", InvSequencerCycles, c.calls, got, want)
	}
	c.calls++
	return got
}
