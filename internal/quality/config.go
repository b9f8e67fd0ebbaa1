package quality

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// ErrInvalidConfiguration is returned when a supplied threshold is negative
// or not a number. It is the only error the analyzer can produce.
var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	// DefaultHighCardinalityThreshold is the max distinct values a
	// categorical column may have before it is flagged.
	DefaultHighCardinalityThreshold = 100
	// DefaultZeroThreshold is the max share of zero values a numeric
	// column may have before it is flagged.
	DefaultZeroThreshold = 0.5
)

// Config holds the analyzer thresholds. The zero value is not usable;
// build one with DefaultConfig and override fields as needed.
type Config struct {
	HighCardinalityThreshold int     `yaml:"high_cardinality_threshold"`
	ZeroThreshold            float64 `yaml:"zero_threshold"`
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		HighCardinalityThreshold: DefaultHighCardinalityThreshold,
		ZeroThreshold:            DefaultZeroThreshold,
	}
}

// Validate rejects negative thresholds.
func (c Config) Validate() error {
	if c.HighCardinalityThreshold < 0 {
		return fmt.Errorf("%w: high_cardinality_threshold must be non-negative, got %d",
			ErrInvalidConfiguration, c.HighCardinalityThreshold)
	}
	if c.ZeroThreshold < 0 {
		return fmt.Errorf("%w: zero_threshold must be non-negative, got %g",
			ErrInvalidConfiguration, c.ZeroThreshold)
	}
	return nil
}

// ConfigFromOptions builds a Config from a loosely typed option map, e.g.
// thresholds parsed out of a config file. Unknown keys are rejected so a
// misspelled threshold never silently falls back to a default.
func ConfigFromOptions(opts map[string]any) (Config, error) {
	cfg := DefaultConfig()
	for key, raw := range opts {
		switch key {
		case "high_cardinality_threshold":
			v, err := cast.ToIntE(raw)
			if err != nil {
				return Config{}, fmt.Errorf("%w: high_cardinality_threshold: %v", ErrInvalidConfiguration, err)
			}
			cfg.HighCardinalityThreshold = v
		case "zero_threshold":
			v, err := cast.ToFloat64E(raw)
			if err != nil {
				return Config{}, fmt.Errorf("%w: zero_threshold: %v", ErrInvalidConfiguration, err)
			}
			cfg.ZeroThreshold = v
		default:
			return Config{}, fmt.Errorf("%w: unknown option %q", ErrInvalidConfiguration, key)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
