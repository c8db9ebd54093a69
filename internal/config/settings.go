package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"pinto/internal/failure"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileVersion = 1

type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

type Settings struct {
	Seed            int64    `yaml:"seed,omitempty"`
	ArrayLength     Range    `yaml:"array_length"`
	StringLength    Range    `yaml:"string_length"`
	SyntheticFields []string `yaml:"synthetic_fields,omitempty"`
	LogLevel        string   `yaml:"log_level,omitempty"`
}

type settingsFile struct {
	Version  int `yaml:"version"`
	Settings `yaml:",inline"`
}

func Default() Settings {
	return Settings{
		ArrayLength:  Range{Min: 1, Max: 100},
		StringLength: Range{Min: 1, Max: 100},
	}
}

func (s Settings) Validate() error {
	if err := validateRange("array_length", s.ArrayLength); err != nil {
		return err
	}
	if err := validateRange("string_length", s.StringLength); err != nil {
		return err
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	for _, name := range s.SyntheticFields {
		if strings.TrimSpace(name) == "" {
			return failure.Configf("synthetic_fields must not contain blank names")
		}
	}
	return nil
}

func validateRange(name string, r Range) error {
	if r.Min < 1 {
		return failure.Configf("%s.min must be at least 1, got %d", name, r.Min)
	}
	if r.Max < r.Min {
		return failure.Configf("%s.max must not be below min, got %s", name, r)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, failure.Configf("unknown log_level %q", s)
	}
	return level, nil
}

// Logger returns a text logger on w at the configured level, or a logger
// that discards everything when no level is set.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	if s.LogLevel == "" {
		return slog.New(slog.DiscardHandler)
	}
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Load reads settings from path. A missing file yields the defaults; keys
// absent from the file keep their default values.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}

	file := settingsFile{Settings: s}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return s, fmt.Errorf("failed to parse settings file %q: %w", path, err)
	}
	if err := file.Settings.Validate(); err != nil {
		return s, fmt.Errorf("settings file %q: %w", path, err)
	}
	return file.Settings, nil
}

func (s Settings) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(settingsFile{Version: fileVersion, Settings: s})
}

func FromEnvironment() (Settings, error) {
	return Resolve(DefaultPath())
}

// Resolve loads the settings file at path and applies the PINTO_SEED and
// PINTO_LOG overrides.
func Resolve(path string) (Settings, error) {
	s, err := Load(path)
	if err != nil {
		return s, err
	}
	return s.withEnv()
}

func (s Settings) withEnv() (Settings, error) {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return s, failure.Configf("%s must be an integer, got %q", EnvSeed, v)
		}
		s.Seed = seed
	}
	if v := os.Getenv(EnvLog); v != "" {
		if _, err := parseLevel(v); err != nil {
			return s, err
		}
		s.LogLevel = v
	}
	return s, nil
}
