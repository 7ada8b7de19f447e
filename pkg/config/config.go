// Package config loads run configurations from YAML.
//
// A configuration names one engine and its parameters, plus logging and
// worker settings:
//
//	algorithm:
//	  name: label_propagation
//	  seed: 42
//	  max_iterations: 50
//	logging:
//	  level: debug
//	  format: console
//	workers: 4
//
// Zero values take the defaults of the selected engine.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RandyRDavila/graphcommunities/pkg/algorithms"
	"github.com/RandyRDavila/graphcommunities/pkg/logging"
	"github.com/RandyRDavila/graphcommunities/pkg/validation"
)

// Defaults applied to zero values
const (
	DefaultAlgorithm = "louvain"
	DefaultDamping   = 0.85
	DefaultTolerance = 1e-6
	DefaultTopN      = 10
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultWorkers   = 1

	// MaxWorkers bounds the workers setting.
	MaxWorkers = 1024
)

// Config is a complete run configuration.
type Config struct {
	Algorithm AlgorithmConfig `yaml:"algorithm"`
	Logging   LoggingConfig   `yaml:"logging"`
	Workers   int             `yaml:"workers"`
}

// AlgorithmConfig selects an engine. Fields an engine does not use are
// ignored.
type AlgorithmConfig struct {
	Name          string  `yaml:"name" validate:"required,oneof=louvain kclique label_propagation bulk_label_propagation pagerank"`
	Seed          int64   `yaml:"seed"`
	Synchronous   *bool   `yaml:"synchronous"` // nil means true for the bulk engine, false otherwise
	MaxIterations int     `yaml:"max_iterations"`
	Weighted      bool    `yaml:"weighted"`
	Threshold     float64 `yaml:"threshold"`
	Damping       float64 `yaml:"damping" validate:"unit_open"`
	Tolerance     float64 `yaml:"tolerance"`
	TopN          int     `yaml:"top"`
}

// LoggingConfig controls the run logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r, fills defaults and validates the result.
// Unknown keys are rejected. An empty document yields Default().
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize fills defaults into zero values and validates the result. Call
// it again after changing fields.
func (c *Config) Normalize() error {
	c.applyDefaults()
	return validation.ValidateConfig(c)
}

func (c *Config) applyDefaults() {
	a := &c.Algorithm
	a.Name = validation.DefaultOr(a.Name, DefaultAlgorithm)
	if kind, err := algorithms.ParseKind(a.Name); err == nil {
		a.Name = kind.String()
	}
	if a.Synchronous == nil {
		sync := a.Name == algorithms.KindBulkLabelPropagation.String()
		a.Synchronous = &sync
	}
	a.Damping = validation.DefaultOr(a.Damping, DefaultDamping)
	a.Tolerance = validation.DefaultOr(a.Tolerance, DefaultTolerance)
	a.TopN = validation.DefaultOr(a.TopN, DefaultTopN)

	c.Logging.Level = validation.DefaultOr(c.Logging.Level, DefaultLogLevel)
	c.Logging.Format = validation.DefaultOr(c.Logging.Format, DefaultLogFormat)
	c.Workers = validation.DefaultOr(c.Workers, DefaultWorkers)
}

// Validate checks the tagged fields, then numeric ranges and the rules
// that span fields. Range failures are reported together.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	a := c.Algorithm
	return validation.NewConfigValidator("Config").
		NonNegative("algorithm.max_iterations", a.MaxIterations).
		NonNegativeFloat("algorithm.threshold", a.Threshold).
		PositiveFloat("algorithm.tolerance", a.Tolerance).
		Positive("algorithm.top", a.TopN).
		RangeInt("workers", c.Workers, 1, MaxWorkers).
		OneOf("logging.format", c.Logging.Format, []string{"json", "console"}).
		When(a.Name == algorithms.KindBulkLabelPropagation.String(), func(cv *validation.ConfigValidator) {
			cv.Custom("algorithm.synchronous", func() error {
				if !a.synchronous() {
					return errors.New("bulk_label_propagation only runs synchronously")
				}
				return nil
			})
		}).
		When(a.Name == algorithms.KindKClique.String(), func(cv *validation.ConfigValidator) {
			cv.Custom("algorithm.weighted", func() error {
				if a.Weighted {
					return errors.New("kclique ignores weights")
				}
				return nil
			})
		}).
		Validate()
}

func (a AlgorithmConfig) synchronous() bool {
	return a.Synchronous != nil && *a.Synchronous
}

// Selector builds the engine selector described by the configuration.
func (c *Config) Selector() (algorithms.Algorithm, error) {
	a := c.Algorithm
	kind, err := algorithms.ParseKind(a.Name)
	if err != nil {
		return nil, err
	}

	switch kind {
	case algorithms.KindLouvain:
		return algorithms.LouvainOptions{Threshold: a.Threshold}, nil
	case algorithms.KindKClique:
		return algorithms.KCliqueOptions{}, nil
	case algorithms.KindLabelPropagation:
		return algorithms.LabelPropagationOptions{
			Synchronous:   a.synchronous(),
			MaxIterations: a.MaxIterations,
			Seed:          a.Seed,
		}, nil
	case algorithms.KindBulkLabelPropagation:
		return algorithms.BulkLabelPropagationOptions{
			Synchronous:   a.synchronous(),
			MaxIterations: a.MaxIterations,
			Weighted:      a.Weighted,
		}, nil
	default:
		return algorithms.PageRankOptions{
			DampingFactor: a.Damping,
			MaxIterations: a.MaxIterations,
			Tolerance:     a.Tolerance,
			Weighted:      a.Weighted,
			TopN:          a.TopN,
		}, nil
	}
}

// Logger builds a logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) logging.Logger {
	return logging.New(c.Logging.Format, w, logging.ParseLevel(c.Logging.Level))
}
