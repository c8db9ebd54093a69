package proptest

import (
	"os"
	"path/filepath"
	"pinto/internal/config"
	"pinto/internal/randoms"
	"pinto/internal/registry"
	"testing"

	"pgregory.net/rapid"
)

const (
	maxArrayLength   = 8
	maxStringLength  = 12
	minDraws         = 1
	maxDraws         = 30
	maxEnumConstants = 6
	maxStructFields  = 8
)

type SettingsGenOpt func(*settingsGenConfig)

type settingsGenConfig struct {
	seed *int64
}

func WithSeed(seed int64) SettingsGenOpt {
	return func(c *settingsGenConfig) {
		c.seed = &seed
	}
}

func GenSettings(t *rapid.T, opts ...SettingsGenOpt) config.Settings {
	cfg := &settingsGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	s := settingsGen().Draw(t, "settings")
	if cfg.seed != nil {
		s.Seed = *cfg.seed
	}
	return s
}

type Harness struct {
	T   *rapid.T
	Dir string
}

type RegistryHarness struct {
	Harness
	Settings config.Settings
	Source   *randoms.Source
	Registry *registry.Registry
}

func newRegistry(s config.Settings) (*randoms.Source, *registry.Registry) {
	src := randoms.New(s.Seed)
	return src, registry.New(src,
		registry.WithArrayLength(s.ArrayLength),
		registry.WithStringLength(s.StringLength))
}

// Fresh returns a second registry built from the same settings, so its
// draws replay this harness's draws from the start.
func (h *RegistryHarness) Fresh() *registry.Registry {
	_, reg := newRegistry(h.Settings)
	return reg
}

func RunWithRegistry(t *testing.T, fn func(h *RegistryHarness)) {
	rapid.Check(t, func(rt *rapid.T) {
		settings := GenSettings(rt, WithSeed(seedGen.Draw(rt, "seed")))
		src, reg := newRegistry(settings)

		fn(&RegistryHarness{
			Harness:  Harness{T: rt},
			Settings: settings,
			Source:   src,
			Registry: reg,
		})
	})
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		fn(&Harness{T: rt, Dir: iterDir})
	})
}
