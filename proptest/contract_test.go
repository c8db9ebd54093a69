package proptest

import (
	"errors"
	"pinto/contract"
	"testing"

	"github.com/mitchellh/hashstructure/v2"
	"pgregory.net/rapid"
)

type sample struct {
	ID    int64
	Name  string
	Flags []bool
	Ratio *float32
}

func (s *sample) Equal(o *sample) bool {
	if o == nil || s.ID != o.ID || s.Name != o.Name || len(s.Flags) != len(o.Flags) {
		return false
	}
	for i := range s.Flags {
		if s.Flags[i] != o.Flags[i] {
			return false
		}
	}
	if s.Ratio == nil || o.Ratio == nil {
		return s.Ratio == o.Ratio
	}
	return *s.Ratio == *o.Ratio
}

func (s *sample) Hash() uint64 {
	h, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	if err != nil {
		panic(err)
	}
	return h
}

type partial struct {
	Kept    int
	Ignored int
}

func (p *partial) Equal(o *partial) bool { return o != nil && p.Kept == o.Kept }
func (p *partial) Hash() int             { return p.Kept }

func TestProperty_Equality_FaultFreeTypePasses(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := GenSettings(rt, WithSeed(seedGen.Draw(rt, "seed")))
		s.SyntheticFields = nil
		s.LogLevel = ""

		if err := contract.Equality[*sample]().WithSettings(s).Verify(); err != nil {
			rt.Fatalf("equality rejected a correct type: %v", err)
		}
	})
}

func TestProperty_Equality_ViolationCarriesSeed(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := GenSettings(rt, WithSeed(seedGen.Draw(rt, "seed")))
		s.SyntheticFields = nil
		s.LogLevel = ""

		err := contract.Equality[*partial]().WithSettings(s).Verify()

		var v *contract.Violation
		if !errors.As(err, &v) {
			rt.Fatalf("expected a violation, got %v", err)
		}
		if v.Field != "Ignored" || v.Seed != s.Seed {
			rt.Fatalf("violation %+v, want field Ignored and seed %d", v, s.Seed)
		}
	})
}

func TestProperty_Randomized_SameSeedSameInstances(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := GenSettings(rt, WithSeed(seedGen.Draw(rt, "seed")))
		s.LogLevel = ""
		n := rapid.IntRange(minDraws, 10).Draw(rt, "instances")

		a := contract.Randomized[*sample]().WithSettings(s)
		b := contract.Randomized[*sample]().WithSettings(s)
		for i := range n {
			x, errX := a.Get()
			y, errY := b.Get()
			if errX != nil || errY != nil {
				rt.Fatalf("Get failed: %v / %v", errX, errY)
			}
			if !x.Equal(y) {
				rt.Fatalf("[%s] violated: instance %d differs: %+v vs %+v", InvSameSeedSameValues, i, x, y)
			}
		}
	})
}
