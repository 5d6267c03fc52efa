package configs

import (
	"errors"

	"github.com/reusee/dscope"
	"github.com/reusee/turing/machines"
	"github.com/reusee/turing/vars"
)

type Settings struct {
	MaxSteps     uint64 `json:"max_steps"`
	History      *bool  `json:"history"`
	HistoryLimit int    `json:"history_limit"`
	Parallel     int    `json:"parallel"`
}

// LoadSettings reads settings from the first file defining them and fills
// defaults.
func LoadSettings(loader Loader) (Settings, error) {
	var settings Settings
	if err := loader.AssignFirst("settings", &settings); err != nil && !errors.Is(err, ErrValueNotFound) {
		return settings, err
	}
	settings.MaxSteps = vars.FirstNonZero(settings.MaxSteps, machines.DefaultMaxSteps)
	settings.HistoryLimit = vars.FirstNonZero(settings.HistoryLimit, machines.DefaultHistoryLimit)
	settings.Parallel = vars.FirstNonZero(settings.Parallel, 1)
	return settings, nil
}

// RecordHistory reports the configured history switch, false when unset.
func (s Settings) RecordHistory() bool {
	return vars.DerefOrZero(s.History)
}

// Fork returns a scope carrying the loaded settings and the engine defaults
// they imply.
func Fork(scope dscope.Scope, loader Loader) (dscope.Scope, error) {
	settings, err := LoadSettings(loader)
	if err != nil {
		return scope, err
	}
	return scope.Fork(
		func() Settings {
			return settings
		},
		func() machines.HistoryLimit {
			return machines.HistoryLimit(settings.HistoryLimit)
		},
	), nil
}
