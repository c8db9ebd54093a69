package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvConfig = "PINTO_CONFIG"
	EnvSeed   = "PINTO_SEED"
	EnvLog    = "PINTO_LOG"
)

func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pinto", "settings.yaml")
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		path = home
	}

	return filepath.Abs(path)
}
