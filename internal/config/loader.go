package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks the environment variables Load reads.
	EnvPrefix = "FOLDKIT_"

	maxConfigFileSize = 1024 * 1024 // 1MB

	byExtKey = "strategy.by_ext"
)

// Load reads configuration from a YAML file, then overrides it with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (FOLDKIT_LOG_LEVEL, FOLDKIT_WATCH_DEBOUNCE, ...)
//  2. YAML config file at path (skipped when path is empty)
//  3. Hardcoded defaults
//
// Environment variables map onto section.field by splitting on the first
// underscore after the prefix:
//
//	FOLDKIT_LOG_LEVEL          -> log.level
//	FOLDKIT_INDENT_TAB_WIDTH   -> indent.tab_width
//	FOLDKIT_REGIONS_DEFAULT_COLLAPSED -> regions.default_collapsed
//	FOLDKIT_STRATEGY_BY_EXT_PY -> strategy.by_ext.py
//
// strategy.by_ext keys may be written with or without the leading dot.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// ".go" under by_ext splits on the delimiter, so the map is read from
	// the flattened keys instead of being unmarshalled.
	byExt := extensionMap(k)
	k.Delete(byExtKey)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Strategy.ByExt = byExt
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("config file %s is not a regular file", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s too large: %d bytes (max %d)", path, info.Size(), maxConfigFileSize)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// envKey maps FOLDKIT_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	if ext, ok := strings.CutPrefix(field, "by_ext_"); ok && section == "strategy" {
		return byExtKey + "." + ext
	}
	return section + "." + field
}

// extensionMap collects strategy.by_ext entries keyed by extension without
// the leading dot.
func extensionMap(k *koanf.Koanf) map[string]string {
	var out map[string]string
	for _, key := range k.Keys() {
		ext, ok := strings.CutPrefix(key, byExtKey+".")
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[strings.TrimPrefix(ext, ".")] = k.String(key)
	}
	return out
}
