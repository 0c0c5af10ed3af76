package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vibmerge/internal/export"
	"vibmerge/internal/match"
)

// ConfigError wraps an options-file failure.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("options file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FileOptions is the YAML options file. Every field is optional; set fields
// overlay the defaults and are in turn overridden by explicit flags.
type FileOptions struct {
	ToleranceCm1    *float64 `yaml:"frequency_tolerance_cm1"`
	TopN            *int     `yaml:"top_n_contributions"`
	UnmatchedPolicy *string  `yaml:"unmatched_mode_policy"`
	Format          *string  `yaml:"export_format"`
}

// LoadOptionsFile reads and parses a YAML options file.
func LoadOptionsFile(path string) (FileOptions, error) {
	var opts FileOptions
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, &ConfigError{Path: path, Err: err}
	}
	dec := yaml.Unmarshal(data, &opts)
	if dec != nil {
		return FileOptions{}, &ConfigError{Path: path, Err: dec}
	}
	return opts, nil
}

// Apply overlays the set fields onto the invocation.
func (o FileOptions) Apply(inv *Invocation) error {
	if o.ToleranceCm1 != nil {
		inv.ToleranceCm1 = *o.ToleranceCm1
	}
	if o.TopN != nil {
		inv.TopN = *o.TopN
	}
	if o.UnmatchedPolicy != nil {
		policy, err := match.ParseUnmatchedPolicy(*o.UnmatchedPolicy)
		if err != nil {
			return &ConfigError{Path: "", Err: err}
		}
		inv.UnmatchedPolicy = policy
	}
	if o.Format != nil {
		format, err := export.ParseFormat(*o.Format)
		if err != nil {
			return &ConfigError{Path: "", Err: err}
		}
		inv.Format = format
	}
	return nil
}
