package contract

import (
	"pinto/internal/config"
	"pinto/internal/failure"
	"pinto/internal/subtype"
)

var (
	ErrConfiguration     = failure.ErrConfiguration
	ErrMissingFactory    = failure.ErrMissingFactory
	ErrContractViolation = failure.ErrContractViolation
	ErrReflectiveAccess  = failure.ErrReflectiveAccess
)

type (
	Violation = failure.Violation
	Settings  = config.Settings
	Range     = config.Range

	Subtyper    = subtype.Subtyper
	SubtypeFunc = subtype.Func
	Embedding   = subtype.Embedding
)

func DefaultSettings() Settings {
	return config.Default()
}

// LoadSettings reads a settings file; a missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	return config.Load(path)
}
