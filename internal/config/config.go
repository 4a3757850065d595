package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/emfield/internal/field"
)

const (
	DefaultCutoff      = 1e12
	DefaultSampleCount = 1000
	DefaultDx          = 10e-6
	DefaultExtent      = 0.002
	DefaultStride      = 20
	DefaultLevels      = 8
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultTheme       = "cyberpunk"
)

var (
	ErrStride = errors.New("config: render stride must be positive")
	ErrLevels = errors.New("config: render levels must be at least 2")
)

type Config struct {
	Cutoff        float64      `yaml:"cutoff" json:"cutoff"`
	SampleCount   int          `yaml:"sample_count" json:"sample_count"`
	Dx            float64      `yaml:"dx" json:"dx"`
	Extent        float64      `yaml:"extent" json:"extent"`
	Seed          uint64       `yaml:"seed" json:"seed"`
	Workers       int          `yaml:"workers" json:"workers"`
	MaxGridPoints int          `yaml:"max_grid_points" json:"max_grid_points"`
	Render        RenderConfig `yaml:"render" json:"render"`
}

type RenderConfig struct {
	Stride int    `yaml:"stride" json:"stride"`
	Levels int    `yaml:"levels" json:"levels"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Theme  string `yaml:"theme" json:"theme"`
}

// DefaultConfig reproduces the reference run: 1000 modes below 1 THz over a
// 2 mm cube sampled every 10 µm.
func DefaultConfig() *Config {
	return &Config{
		Cutoff:        DefaultCutoff,
		SampleCount:   DefaultSampleCount,
		Dx:            DefaultDx,
		Extent:        DefaultExtent,
		MaxGridPoints: field.DefaultMaxGridPoints,
		Render: RenderConfig{
			Stride: DefaultStride,
			Levels: DefaultLevels,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Theme:  DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto overlays the yaml file at path on a copy of base. Keys absent from
// the file keep base's values.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes cfg as yaml.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Params converts the numeric section into pipeline parameters.
func (c *Config) Params() field.Params {
	return field.Params{
		Cutoff:        c.Cutoff,
		SampleCount:   c.SampleCount,
		Dx:            c.Dx,
		Extent:        c.Extent,
		Workers:       c.Workers,
		MaxGridPoints: c.MaxGridPoints,
	}
}

// Validate fails fast on values that would make the run meaningless or
// allocate without bound.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Render.Stride <= 0 {
		return fmt.Errorf("invalid config: %w (got %d)", ErrStride, c.Render.Stride)
	}
	if c.Render.Levels < 2 {
		return fmt.Errorf("invalid config: %w (got %d)", ErrLevels, c.Render.Levels)
	}
	return nil
}
