// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdfmarkup/internal/export"
	"github.com/kpauljoseph/pdfmarkup/internal/session"
)

type Config struct {
	DefaultColor    string  `yaml:"default_color"`
	DefaultFontSize float64 `yaml:"default_font_size"`
	FontURL         string  `yaml:"font_url"`
	PreviewDir      string  `yaml:"preview_dir"`
	Viewport        struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if !session.ValidFontSize(cfg.DefaultFontSize) {
		return fmt.Errorf("config: default_font_size %g not in %v", cfg.DefaultFontSize, session.FontSizes)
	}
	return nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.DefaultColor == "" {
		cfg.DefaultColor = "#e03131"
	}
	if cfg.DefaultFontSize == 0 {
		cfg.DefaultFontSize = 14
	}
	if cfg.FontURL == "" {
		cfg.FontURL = export.DefaultFontURL
	}
	if cfg.Viewport.Width == 0 {
		cfg.Viewport.Width = 1200
	}
	if cfg.Viewport.Height == 0 {
		cfg.Viewport.Height = 900
	}
}
