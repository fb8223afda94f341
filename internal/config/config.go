// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles typegen project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dacolabs/typegen/internal/union"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Config represents the typegen.yaml project configuration file.
type Config struct {
	Version   int       `yaml:"version"`
	Target    string    `yaml:"target,omitempty"`
	Output    string    `yaml:"output,omitempty"`
	Package   string    `yaml:"package,omitempty"`
	Header    []string  `yaml:"header,omitempty"`
	Inference Inference `yaml:"inference"`
	Log       Log       `yaml:"log"`
	Inputs    []Input   `yaml:"inputs,omitempty"`
}

// Inference holds the knobs of the inference engine.
type Inference struct {
	Enums         bool   `yaml:"enums"`
	Dates         bool   `yaml:"dates"`
	InternLimit   int    `yaml:"intern_limit,omitempty"`
	StringPolicy  string `yaml:"string_policy,omitempty"`
	MaxEnumCases  int    `yaml:"max_enum_cases,omitempty"`
	WidenIntegers bool   `yaml:"widen_integers,omitempty"`
}

// Log selects the log level and output format.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Input names one top-level type and the sample files it is inferred from.
type Input struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
}

// Default returns the configuration used when no typegen.yaml exists.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Output:  "types",
		Inference: Inference{
			Enums:        true,
			Dates:        true,
			StringPolicy: union.CollapseToString.String(),
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads a Config from a file path. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.Inference.InternLimit < 0 {
		return errors.New("inference.intern_limit must not be negative")
	}
	if c.Inference.MaxEnumCases < 0 {
		return errors.New("inference.max_enum_cases must not be negative")
	}
	if _, err := union.ParseStringPolicy(c.Inference.StringPolicy); err != nil {
		return err
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}

	seen := make(map[string]bool, len(c.Inputs))
	for i, in := range c.Inputs {
		if in.Name == "" {
			return fmt.Errorf("inputs[%d]: name is required", i)
		}
		if seen[in.Name] {
			return fmt.Errorf("inputs[%d]: duplicate name %q", i, in.Name)
		}
		seen[in.Name] = true
		if len(in.Files) == 0 {
			return fmt.Errorf("input %q: at least one file is required", in.Name)
		}
	}
	return nil
}

// Overlay replaces fields with values set in v, from bound flags or
// TYPEGEN_* environment variables. Keys use the yaml paths, e.g.
// "inference.enums".
func (c *Config) Overlay(v *viper.Viper) {
	if v.IsSet("target") {
		c.Target = v.GetString("target")
	}
	if v.IsSet("output") {
		c.Output = v.GetString("output")
	}
	if v.IsSet("package") {
		c.Package = v.GetString("package")
	}
	if v.IsSet("inference.enums") {
		c.Inference.Enums = v.GetBool("inference.enums")
	}
	if v.IsSet("inference.dates") {
		c.Inference.Dates = v.GetBool("inference.dates")
	}
	if v.IsSet("inference.intern_limit") {
		c.Inference.InternLimit = v.GetInt("inference.intern_limit")
	}
	if v.IsSet("inference.string_policy") {
		c.Inference.StringPolicy = v.GetString("inference.string_policy")
	}
	if v.IsSet("inference.max_enum_cases") {
		c.Inference.MaxEnumCases = v.GetInt("inference.max_enum_cases")
	}
	if v.IsSet("inference.widen_integers") {
		c.Inference.WidenIntegers = v.GetBool("inference.widen_integers")
	}
	if v.IsSet("log.level") {
		c.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		c.Log.Format = v.GetString("log.format")
	}
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// NewViper returns a viper instance that reads TYPEGEN_* environment
// variables, with dots in keys mapped to underscores
// (TYPEGEN_INFERENCE_ENUMS for "inference.enums").
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TYPEGEN")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	return v
}
