// SPDX-License-Identifier: EPL-2.0

// Package config loads the audsniff command line configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audsniff"
	"github.com/ik5/audsniff/audio"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "audsniff.yaml"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownKind   = errors.New("unknown backend kind")
)

// Config is the decoded configuration file.
type Config struct {
	// FastWAV routes plain PCM WAV files to the lightweight parser.
	FastWAV bool `yaml:"fast_wav"`

	// Resample wraps every decoder so the output format can be chosen.
	Resample bool `yaml:"resample"`

	// Disabled lists backend kinds that are treated as not built in.
	Disabled []string `yaml:"disabled_backends,omitempty"`

	Output Output `yaml:"output"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Output is the PCM format requested from decoders.
type Output struct {
	Rate     int    `yaml:"rate"`
	Format   string `yaml:"format"`
	Channels int    `yaml:"channels"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		FastWAV:  true,
		Resample: true,
		Output: Output{
			Rate:     44100,
			Format:   "s16",
			Channels: 2,
		},
		LogLevel: "info",
	}
}

// Load reads path on top of Default. An empty path falls back to
// DefaultFile, which may be missing.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML data on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: output format: %w", ErrInvalidConfig, err)
	}
	if c.Output.Rate <= 0 {
		return fmt.Errorf("%w: output rate %d", ErrInvalidConfig, c.Output.Rate)
	}
	if c.Output.Channels < 1 || c.Output.Channels > 2 {
		return fmt.Errorf("%w: %d output channels", ErrInvalidConfig, c.Output.Channels)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for _, kind := range c.Disabled {
		if !knownKind(kind) {
			return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownKind, kind)
		}
	}
	return nil
}

// OutputFormat parses Output.Format.
func (c *Config) OutputFormat() (audio.Format, error) {
	f, err := audio.ParseFormat(strings.ToLower(c.Output.Format))
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return f, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// FactoryOptions maps the configuration to factory options.
func (c *Config) FactoryOptions(logger *slog.Logger) []audsniff.Option {
	opts := []audsniff.Option{
		audsniff.WithLogger(logger),
		audsniff.WithFastWAV(c.FastWAV),
	}
	for _, kind := range c.Disabled {
		opts = append(opts, audsniff.WithoutBackend(kind))
	}
	return opts
}

func knownKind(kind string) bool {
	switch kind {
	case audsniff.KindMIDI, audsniff.KindOpus, audsniff.KindVorbis,
		audsniff.KindWAV, audsniff.KindSndfile, audsniff.KindTracker,
		audsniff.KindMP3:
		return true
	}
	return false
}
