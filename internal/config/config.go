// Package config loads foldkit configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the root configuration.
type Config struct {
	Log      Log      `koanf:"log"`
	Strategy Strategy `koanf:"strategy"`
	Regions  Regions  `koanf:"regions"`
	Braces   Braces   `koanf:"braces"`
	Indent   Indent   `koanf:"indent"`
	Watch    Watch    `koanf:"watch"`
	Metrics  Metrics  `koanf:"metrics"`
	View     View     `koanf:"view"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// Strategy selects fold strategies by file extension.
type Strategy struct {
	Default string            `koanf:"default"`
	ByExt   map[string]string `koanf:"by_ext"` // extension -> strategy name; see Load
}

// Regions configures region-marker folding.
type Regions struct {
	DefaultCollapsed bool `koanf:"default_collapsed"`
}

// Braces configures bracket folding.
type Braces struct {
	Pairs        []string `koanf:"pairs"`
	MinLines     int      `koanf:"min_lines"`
	KeepLiterals bool     `koanf:"keep_literals"` // do not skip strings and comments
}

// Indent configures indentation folding.
type Indent struct {
	TabWidth int `koanf:"tab_width"`
	MinLines int `koanf:"min_lines"`
}

// Watch configures the file watcher.
type Watch struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Metrics configures the prometheus endpoint. Empty Addr disables it.
type Metrics struct {
	Addr string `koanf:"addr"`
}

// View configures folded-text rendering.
type View struct {
	Placeholder string `koanf:"placeholder"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Strategy.Default == "" {
		cfg.Strategy.Default = "braces"
	}
	if len(cfg.Braces.Pairs) == 0 {
		cfg.Braces.Pairs = []string{"{}"}
	}
	if cfg.Braces.MinLines == 0 {
		cfg.Braces.MinLines = 2
	}
	if cfg.Indent.TabWidth == 0 {
		cfg.Indent.TabWidth = 4
	}
	if cfg.Indent.MinLines == 0 {
		cfg.Indent.MinLines = 2
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 100 * time.Millisecond
	}
	if cfg.View.Placeholder == "" {
		cfg.View.Placeholder = "..."
	}
}

// Validate checks the configuration for values no component can use.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: %q is not json or console", c.Log.Format))
	}
	for _, p := range c.Braces.Pairs {
		if len(p) != 2 || p[0] == p[1] {
			errs = append(errs, fmt.Errorf("braces.pairs: %q is not two distinct characters", p))
		}
	}
	if c.Braces.MinLines < 2 {
		errs = append(errs, fmt.Errorf("braces.min_lines: must be at least 2, got %d", c.Braces.MinLines))
	}
	if c.Indent.TabWidth < 1 || c.Indent.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("indent.tab_width: must be in [1,16], got %d", c.Indent.TabWidth))
	}
	if c.Indent.MinLines < 2 {
		errs = append(errs, fmt.Errorf("indent.min_lines: must be at least 2, got %d", c.Indent.MinLines))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must not be negative, got %s", c.Watch.Debounce))
	}
	if strings.TrimSpace(c.Strategy.Default) == "" {
		errs = append(errs, errors.New("strategy.default: must not be empty"))
	}
	for ext, name := range c.Strategy.ByExt {
		if strings.Trim(ext, ". ") == "" {
			errs = append(errs, fmt.Errorf("strategy.by_ext: empty extension mapped to %q", name))
		}
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("strategy.by_ext.%s: strategy must not be empty", ext))
		}
	}
	return errors.Join(errs...)
}
