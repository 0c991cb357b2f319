// Package config loads the YAML configuration consumed by the runnable
// entry points: where the lead-capture API lives, typeahead limits, and the
// simulated analysis sequence.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leadflow/pkg/funnel"
)

// Config is the full file schema.
type Config struct {
	Service   Service        `yaml:"service"`
	Typeahead Typeahead      `yaml:"typeahead"`
	Analysis  []AnalysisStep `yaml:"analysis"`
}

// Service points at the lead-capture API backend. An empty BaseURL means the
// local demo dataset is used instead.
type Service struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// Typeahead bounds address-search results.
type Typeahead struct {
	Limit int `yaml:"limit"`
}

// AnalysisStep is one entry of the simulated progress sequence.
type AnalysisStep struct {
	Label    string   `yaml:"label"`
	Duration Duration `yaml:"duration"`
}

// Duration decodes from YAML strings in time.ParseDuration syntax ("10s",
// "1.5s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("config: duration must be a string like \"1.5s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Service:   Service{Timeout: Duration(10 * time.Second)},
		Typeahead: Typeahead{Limit: 8},
	}
}

// Load reads and validates a configuration file. Omitted fields keep their
// defaults.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse decodes configuration from r on top of the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the funnel cannot run with.
func (c Config) Validate() error {
	if c.Typeahead.Limit < 0 {
		return fmt.Errorf("config: typeahead limit must not be negative, got %d", c.Typeahead.Limit)
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("config: service timeout must not be negative, got %s", c.Service.Timeout)
	}
	for i, step := range c.Analysis {
		if step.Label == "" {
			return fmt.Errorf("config: analysis step %d is missing a label", i)
		}
		if step.Duration <= 0 {
			return fmt.Errorf("config: analysis step %d needs a positive duration", i)
		}
	}
	return nil
}

// Steps converts the configured analysis sequence for the funnel. Nil when
// the file does not override the default sequence.
func (c Config) Steps() []funnel.AnalysisStep {
	if len(c.Analysis) == 0 {
		return nil
	}
	out := make([]funnel.AnalysisStep, 0, len(c.Analysis))
	for _, step := range c.Analysis {
		out = append(out, funnel.AnalysisStep{Label: step.Label, Duration: step.Duration.Std()})
	}
	return out
}
