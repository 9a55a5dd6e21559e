// Package config handles converter configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/vpxglb/internal/logger"
)

// Camera fit strategies.
const (
	CameraFitSimple   = "simple"
	CameraFitAccurate = "accurate"
)

// Mesh grouping keys.
const (
	GroupByLayer     = "layer"
	GroupByNone      = "none"
	GroupByPartGroup = "part_group"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all converter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export" toml:"export"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ExportConfig holds the settings of the GLB export.
type ExportConfig struct {
	// UnitScale is the number of meters per table unit.
	UnitScale        float32 `yaml:"unit_scale" toml:"unit_scale"`
	CameraFit        string  `yaml:"camera_fit" toml:"camera_fit"`
	GroupBy          string  `yaml:"group_by" toml:"group_by"`
	IncludeInvisible bool    `yaml:"include_invisible" toml:"include_invisible"`
	Parallel         bool    `yaml:"parallel" toml:"parallel"`
	// Workers bounds parallel generation; 0 uses every CPU.
	Workers    int  `yaml:"workers" toml:"workers"`
	GameLights bool `yaml:"game_lights" toml:"game_lights"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// DefaultUnitScale converts table units to meters: a 1.0625 inch ball is
// 50 units across.
const DefaultUnitScale = 25.4 * 1.0625 / 50 / 1000

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			UnitScale:  DefaultUnitScale,
			CameraFit:  CameraFitSimple,
			GroupBy:    GroupByLayer,
			Parallel:   true,
			GameLights: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting. Use multierr.Errors to list them.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	e := c.Export
	if !(e.UnitScale > 0) {
		invalid("export.unit_scale must be positive, got %g", e.UnitScale)
	}
	switch e.CameraFit {
	case CameraFitSimple, CameraFitAccurate:
	default:
		invalid("export.camera_fit %q, want %s or %s", e.CameraFit, CameraFitSimple, CameraFitAccurate)
	}
	switch e.GroupBy {
	case GroupByLayer, GroupByNone, GroupByPartGroup:
	default:
		invalid("export.group_by %q, want %s, %s or %s", e.GroupBy, GroupByLayer, GroupByNone, GroupByPartGroup)
	}
	if e.Workers < 0 {
		invalid("export.workers must not be negative, got %d", e.Workers)
	}
	if _, lerr := logger.ParseLevel(c.Logging.Level); lerr != nil {
		invalid("logging.level: %v", lerr)
	}
	return err
}
