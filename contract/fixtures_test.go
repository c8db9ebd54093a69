package contract_test

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"
)

func hashOf(v any) uint64 {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		panic(err)
	}
	return h
}

type Shape int

const (
	Circle Shape = iota + 1
	Square
	Triangle
)

func (Shape) Values() []Shape { return []Shape{Circle, Square, Triangle} }

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

type Point struct {
	X     int
	Y     int
	Label string
	Tags  []string
	Kind  Shape
	Scale *float64
}

func (p *Point) Equal(o *Point) bool {
	if o == nil {
		return false
	}
	return p.X == o.X && p.Y == o.Y && p.Label == o.Label &&
		slices.Equal(p.Tags, o.Tags) && p.Kind == o.Kind && floatPtrEqual(p.Scale, o.Scale)
}

func (p *Point) Hash() uint64 { return hashOf(p) }

func (p *Point) String() string { return fmt.Sprintf("Point(%d, %d)", p.X, p.Y) }

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type SpecialPoint struct {
	Point
}

type HalfPoint struct {
	X int
	Y int
}

func (p *HalfPoint) Equal(o *HalfPoint) bool { return o != nil && p.X == o.X }
func (p *HalfPoint) Hash() int               { return p.X }

type ShallowHash struct {
	X int
	Y int
}

func (p *ShallowHash) Equal(o *ShallowHash) bool { return o != nil && *p == *o }
func (p *ShallowHash) Hash() int                 { return p.X }

var unstableCalls int

type Unstable struct {
	X int
}

func (u *Unstable) Equal(o *Unstable) bool { return o != nil && u.X == o.X }
func (u *Unstable) Hash() int {
	unstableCalls++
	return u.X + unstableCalls
}

type Weird struct {
	X int
}

func (w *Weird) Equal(o *Weird) bool { return o != nil && w != o }
func (w *Weird) Hash() int           { return w.X }

type Fragile struct {
	X int
}

func (f *Fragile) Equal(o *Fragile) bool { return f.X == o.X }
func (f *Fragile) Hash() int             { return f.X }

type NoEqual struct {
	X int
}

func (n *NoEqual) Hash() int { return n.X }

type NoHash struct {
	X int
}

func (n *NoHash) Equal(o *NoHash) bool { return o != nil && n.X == o.X }

type Money struct {
	Amount   int64
	Currency string
}

type noCopy struct{}

type Account struct {
	noCopy  noCopy
	id      int64
	owner   string
	active  bool
	opened  time.Time
	ref     uuid.UUID
	balance Money
}

func (a *Account) Equal(other any) bool {
	o, ok := other.(*Account)
	if !ok || o == nil {
		return false
	}
	return a.id == o.id && a.owner == o.owner && a.active == o.active &&
		a.opened.Equal(o.opened) && a.ref == o.ref && a.balance == o.balance
}

func (a *Account) HashCode() int64 {
	return int64(hashOf(struct {
		ID      int64
		Owner   string
		Active  bool
		Opened  [2]int64
		Ref     uuid.UUID
		Balance Money
	}{a.id, a.owner, a.active, [2]int64{a.opened.Unix(), int64(a.opened.Nanosecond())}, a.ref, a.balance}))
}

type Mode int

func (Mode) Values() []Mode { return []Mode{1} }

type Switch struct {
	On Mode
}

func (s *Switch) Equal(o *Switch) bool { return o != nil && s.On == o.On }
func (s *Switch) Hash() int            { return int(s.On) }

type Color string

type Paint struct {
	C     Color
	Coats uint8
}

func (p *Paint) Equal(o *Paint) bool { return o != nil && *p == *o }
func (p *Paint) Hash() uint64        { return hashOf(p) }

type Bean struct {
	name      string
	age       int
	active    bool
	tags      []string
	readOnly  string
	writeOnly int
	untouched chan int
}

func (b *Bean) Name() string       { return b.name }
func (b *Bean) SetName(n string)   { b.name = n }
func (b *Bean) GetAge() int        { return b.age }
func (b *Bean) SetAge(a int) error { b.age = a; return nil }
func (b *Bean) IsActive() bool     { return b.active }
func (b *Bean) SetActive(v bool)   { b.active = v }
func (b *Bean) Tags() []string     { return b.tags }
func (b *Bean) SetTags(t []string) { b.tags = t }
func (b *Bean) ReadOnly() string   { return b.readOnly }
func (b *Bean) SetWriteOnly(v int) { b.writeOnly = v }

type Stuck struct {
	v int
}

func (s *Stuck) V() int { return 7 }

type Deaf struct {
	v int
}

func (d *Deaf) SetV(int) {}

type Lossy struct {
	name string
}

func (l *Lossy) Name() string     { return l.name }
func (l *Lossy) SetName(n string) { l.name = n + "!" }

type Guarded struct {
	age int
}

func (g *Guarded) Age() int { return g.age }
func (g *Guarded) SetAge(a int) error {
	return errors.New("age is managed elsewhere")
}

type Wire struct {
	ch chan int
}

func (w *Wire) Ch() chan int     { return w.ch }
func (w *Wire) SetCh(c chan int) { w.ch = c }

type Plain struct {
	X int
}

type Identity struct {
	X int
}

func (i *Identity) String() string { return fmt.Sprintf("%T@%p", i, i) }

type Addr struct {
	X int
}

func (a *Addr) String() string { return fmt.Sprintf("%p", a) }

type Blank struct {
	s string
}

func (b *Blank) String() string { return b.s }

type Boom struct {
	X int
}

func (b *Boom) String() string { panic("no representation") }
