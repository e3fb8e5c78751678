package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/sparsetable/pkg/column"
	"github.com/ajitpratap0/sparsetable/pkg/defaults"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sparsetable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, defaults.Standard().Equal(cfg.Defaults))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, column.DefaultMaterializeWarnRows, cfg.Column.MaterializeWarnRows)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"nil byte default", func(c *Config) { c.Defaults.Bytes = nil }},
		{"nil char default", func(c *Config) { c.Defaults.Chars = nil }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad encoding", func(c *Config) { c.Logging.Encoding = "xml" }},
		{"negative warn rows", func(c *Config) { c.Column.MaterializeWarnRows = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("ST_A", "alpha")
	t.Setenv("ST_LOOP", "${ST_LOOP}")

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"${ST_A}", "alpha"},
		{"x ${ST_A} y ${ST_A}", "x alpha y alpha"},
		{"${ST_LOOP}", "${ST_LOOP}"},
		{"${ST_UNSET}!", "!"},
		{"open ${ST_A", "open ${ST_A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, substituteEnvVars(tt.in), tt.in)
	}
}

func TestLoad(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.True(t, defaults.Standard().Equal(cfg.Defaults))
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := writeFile(t, `
defaults:
  int: -1
  float: 2.5
  char: 63
  string: "n/a"
  chars: [46, 46]
logging:
  level: debug
metrics:
  enabled: true
column:
  materialize_warn_rows: 100
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, int32(-1), cfg.Defaults.Int)
		assert.Equal(t, float32(2.5), cfg.Defaults.Float)
		assert.Equal(t, '?', cfg.Defaults.Char)
		assert.Equal(t, "n/a", cfg.Defaults.String)
		assert.Equal(t, []rune(".."), cfg.Defaults.Chars)
		assert.Equal(t, []byte{0}, cfg.Defaults.Bytes)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Encoding)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 100, cfg.Column.MaterializeWarnRows)
	})

	t.Run("environment substitution", func(t *testing.T) {
		t.Setenv("NA_MARKER", "missing")
		path := writeFile(t, "defaults:\n  string: ${NA_MARKER}\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "missing", cfg.Defaults.String)
	})

	t.Run("substituted values are not expanded again", func(t *testing.T) {
		t.Setenv("NA_MARKER", "${NA_MARKER}")
		path := writeFile(t, "defaults:\n  string: \"${NA_MARKER}-${UNSET_MARKER}\"\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "${NA_MARKER}-", cfg.Defaults.String)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SPARSETABLE_DEFAULTS_INT", "-5")
		t.Setenv("SPARSETABLE_COLUMN_MATERIALIZE_WARN_ROWS", "10")
		path := writeFile(t, "defaults:\n  int: 3\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, int32(-5), cfg.Defaults.Int)
		assert.Equal(t, 10, cfg.Column.MaterializeWarnRows)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "logging:\n  level: loud\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "defaults: [unclosed"))
		require.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Defaults.Int = -1
	cfg.Defaults.String = "?"
	cfg.Column.MaterializeWarnRows = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Defaults.Equal(loaded.Defaults))
	assert.Equal(t, 42, loaded.Column.MaterializeWarnRows)
}

func TestColumnOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Defaults.Int = -8

	col := column.NewIntColumn(cfg.ColumnOptions(column.WithLabel("x"))...)
	assert.Equal(t, int32(-8), col.GetInt(0))
	assert.Equal(t, "x", col.Label())

	cfg.Defaults.Int = 0
	assert.Equal(t, int32(-8), col.GetInt(0), "the column keeps its own policy")
}
