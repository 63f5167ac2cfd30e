package dataprocessing

import (
	"tabproc/internal/config"
)

// Options configures dataset loading behavior
type Options struct {
	// Delimiter used when reading CSV input
	Delimiter rune

	// MissingMarkers lists cell contents treated as missing values.
	// Empty cells are always treated as missing.
	MissingMarkers []string

	// DetectTypes enables numeric type inference on load
	DetectTypes bool
}

// DefaultOptions returns default loading options
func DefaultOptions() Options {
	return Options{
		Delimiter:      ',',
		MissingMarkers: []string{"NA", "NaN", "null"},
		DetectTypes:    true,
	}
}

// OptionsFromConfig builds loading options from the processing config section
func OptionsFromConfig(cfg config.ProcessingConfig) Options {
	opts := DefaultOptions()
	if cfg.Delimiter != "" {
		opts.Delimiter = rune(cfg.Delimiter[0])
	}
	if len(cfg.MissingMarkers) > 0 {
		opts.MissingMarkers = cfg.MissingMarkers
	}
	opts.DetectTypes = cfg.DetectTypes
	return opts
}

// nanValues returns the full set of markers mapped to the missing
// sentinel on load, always including the empty cell.
func (o Options) nanValues() []string {
	values := make([]string, 0, len(o.MissingMarkers)+1)
	values = append(values, "")
	values = append(values, o.MissingMarkers...)
	return values
}
