package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foldkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "braces", cfg.Strategy.Default)
	assert.Equal(t, []string{"{}"}, cfg.Braces.Pairs)
	assert.Equal(t, 2, cfg.Braces.MinLines)
	assert.Equal(t, 4, cfg.Indent.TabWidth)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "...", cfg.View.Placeholder)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
strategy:
  default: indent
  by_ext:
    cs: braces+regions
regions:
  default_collapsed: true
braces:
  pairs: ["{}", "[]"]
  min_lines: 3
watch:
  debounce: 250ms
metrics:
  addr: ":9464"
view:
  placeholder: "<...>"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "indent", cfg.Strategy.Default)
	assert.Equal(t, map[string]string{"cs": "braces+regions"}, cfg.Strategy.ByExt)
	assert.True(t, cfg.Regions.DefaultCollapsed)
	assert.Equal(t, []string{"{}", "[]"}, cfg.Braces.Pairs)
	assert.Equal(t, 3, cfg.Braces.MinLines)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ":9464", cfg.Metrics.Addr)
	assert.Equal(t, "<...>", cfg.View.Placeholder)
	// untouched sections keep their defaults
	assert.Equal(t, 4, cfg.Indent.TabWidth)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\nindent:\n  tab_width: 2\n")
	t.Setenv("FOLDKIT_LOG_LEVEL", "warn")
	t.Setenv("FOLDKIT_INDENT_TAB_WIDTH", "8")
	t.Setenv("FOLDKIT_REGIONS_DEFAULT_COLLAPSED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Indent.TabWidth)
	assert.True(t, cfg.Regions.DefaultCollapsed)
}

func TestLoad_ByExtKeysWithOrWithoutDot(t *testing.T) {
	path := writeConfig(t, `
strategy:
  by_ext:
    ".go": indent
    md: regions
`)
	t.Setenv("FOLDKIT_STRATEGY_BY_EXT_PY", "braces")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"go": "indent", "md": "regions", "py": "braces"}, cfg.Strategy.ByExt)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "log: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "log:\n  format: xml\nbraces:\n  pairs: [\"{\"]\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "braces.pairs")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"same pair chars", func(c *Config) { c.Braces.Pairs = []string{"||"} }, "braces.pairs"},
		{"min lines", func(c *Config) { c.Braces.MinLines = 1 }, "braces.min_lines"},
		{"tab width", func(c *Config) { c.Indent.TabWidth = 0 }, "indent.tab_width"},
		{"indent min lines", func(c *Config) { c.Indent.MinLines = 1 }, "indent.min_lines"},
		{"empty extension", func(c *Config) { c.Strategy.ByExt = map[string]string{".": "indent"} }, "strategy.by_ext"},
		{"empty strategy for extension", func(c *Config) { c.Strategy.ByExt = map[string]string{"py": " "} }, "strategy.by_ext.py"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"empty strategy", func(c *Config) { c.Strategy.Default = " " }, "strategy.default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("FOLDKIT_LOG_LEVEL"))
	assert.Equal(t, "indent.tab_width", envKey("FOLDKIT_INDENT_TAB_WIDTH"))
	assert.Equal(t, "metrics", envKey("FOLDKIT_METRICS"))
	assert.Equal(t, "strategy.by_ext.py", envKey("FOLDKIT_STRATEGY_BY_EXT_PY"))
	assert.Equal(t, "strategy.default", envKey("FOLDKIT_STRATEGY_DEFAULT"))
}
