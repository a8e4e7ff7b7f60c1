// Package config provides configuration loading and management for freqfilter.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"freqfilter/pkg/filter"
	"freqfilter/pkg/fourier"
)

// ErrInvalid is returned by Validate for an unusable configuration.
var ErrInvalid = errors.New("config: invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Transform parameters
	Transform struct {
		// Size is the side length N every input image must have
		Size int `yaml:"size"`
	} `yaml:"transform"`

	// Filter selection defaults
	Filter struct {
		// Kind is the default filter, e.g. "gaussian-lowpass"
		Kind string `yaml:"kind"`

		// CutoffIndex is the default selector position
		CutoffIndex int `yaml:"cutoffIndex"`

		// MaxCutoffIndex is the last selector position used by sweeps
		MaxCutoffIndex int `yaml:"maxCutoffIndex"`

		// Scales maps a selector position to a cutoff per family
		Scales filter.Scales `yaml:"scales"`

		// CacheSpectra keeps the forward spectrum of each image between runs
		CacheSpectra bool `yaml:"cacheSpectra"`
	} `yaml:"filter"`

	// Display parameters
	Display struct {
		// LogDivisor maps log(1+|X|) onto [0,255]
		LogDivisor float64 `yaml:"logDivisor"`
	} `yaml:"display"`

	// Processing parameters
	Processing struct {
		// NumCores bounds the number of concurrent runs in a sweep
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Dir is where composites and panels are written
		Dir string `yaml:"dir"`

		// Format is the image extension used for outputs (png, jpg, bmp, tiff)
		Format string `yaml:"format"`

		// SavePanels also writes the four panels as separate images
		SavePanels bool `yaml:"savePanels"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Transform.Size = 512

	cfg.Filter.Kind = filter.IdealLowPass.String()
	cfg.Filter.CutoffIndex = 0
	cfg.Filter.MaxCutoffIndex = 9
	cfg.Filter.Scales = filter.DefaultScales
	cfg.Filter.CacheSpectra = false

	cfg.Display.LogDivisor = fourier.DefaultLogDivisor

	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default

	cfg.Output.Dir = "output"
	cfg.Output.Format = "png"
	cfg.Output.SavePanels = false
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks that the configuration can drive the pipeline.
func (c *Config) Validate() error {
	if !fourier.IsPowerOfTwo(c.Transform.Size) || c.Transform.Size > fourier.MaxSize {
		return fmt.Errorf("%w: transform size %d must be a power of two up to %d",
			ErrInvalid, c.Transform.Size, fourier.MaxSize)
	}
	if _, err := filter.ParseKind(c.Filter.Kind); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Filter.CutoffIndex < 0 || c.Filter.MaxCutoffIndex < 0 {
		return fmt.Errorf("%w: cutoff indices must be non-negative", ErrInvalid)
	}
	s := c.Filter.Scales
	if !(s.Ideal > 0 && s.Gaussian > 0 && s.Butterworth > 0) {
		return fmt.Errorf("%w: cutoff scales must be positive, got %+v", ErrInvalid, s)
	}
	if !(c.Display.LogDivisor > 0) {
		return fmt.Errorf("%w: display log divisor must be positive", ErrInvalid)
	}
	if c.Processing.NumCores < 1 {
		return fmt.Errorf("%w: numCores must be at least 1", ErrInvalid)
	}
	switch c.Output.Format {
	case "png", "jpg", "jpeg", "bmp", "tif", "tiff":
	default:
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalid, c.Output.Format)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
