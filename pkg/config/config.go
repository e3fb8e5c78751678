package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/sparsetable/pkg/column"
	"github.com/ajitpratap0/sparsetable/pkg/defaults"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
	"github.com/ajitpratap0/sparsetable/pkg/logger"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPARSETABLE"

// Config is the complete sparsetable configuration.
type Config struct {
	// Defaults are the sentinels returned for rows without a value
	Defaults defaults.Policy `yaml:"defaults" json:"defaults" mapstructure:"defaults"`
	// Logging configures the global zap logger
	Logging logger.Config `yaml:"logging" json:"logging" mapstructure:"logging"`
	// Metrics toggles the Prometheus collector
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`
	// Column holds per-column tuning
	Column ColumnConfig `yaml:"column" json:"column" mapstructure:"column"`
}

// MetricsConfig controls metric collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
}

// ColumnConfig holds column tuning.
type ColumnConfig struct {
	// MaterializeWarnRows is the dense length above which a warning is
	// logged. Zero disables the warning.
	MaterializeWarnRows int `yaml:"materialize_warn_rows" json:"materialize_warn_rows" mapstructure:"materialize_warn_rows"`
}

// NewConfig returns the configuration used when no file is given.
func NewConfig() *Config {
	return &Config{
		Defaults: defaults.Standard(),
		Logging: logger.Config{
			Level:    "warn",
			Encoding: "json",
		},
		Metrics: MetricsConfig{Enabled: false},
		Column: ColumnConfig{
			MaterializeWarnRows: column.DefaultMaterializeWarnRows,
		},
	}
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	if err := c.Defaults.Validate(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid logging.level").
			WithDetail("level", c.Logging.Level)
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "logging.encoding must be json or console, got %q", c.Logging.Encoding)
	}
	if c.Column.MaterializeWarnRows < 0 {
		return errors.New(errors.ErrorTypeConfig, "column.materialize_warn_rows cannot be negative")
	}
	return nil
}

// ColumnOptions turns the configuration into column construction options,
// followed by extra.
func (c *Config) ColumnOptions(extra ...column.Option) []column.Option {
	opts := []column.Option{
		column.WithPolicy(c.Defaults),
		column.WithMaterializeWarnRows(c.Column.MaterializeWarnRows),
	}
	return append(opts, extra...)
}

// Load reads the configuration at path over NewConfig and applies
// environment overrides. An empty path loads defaults and the environment
// only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, NewConfig())

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the operator
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
				WithDetail("path", path)
		}
		content := substituteEnvVars(string(data))
		if err := v.ReadConfig(bytes.NewReader([]byte(content))); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML").
				WithDetail("path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to marshal YAML")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to write config file").
			WithDetail("path", path)
	}
	return nil
}

// setDefaults registers every key so environment overrides apply even when
// the file omits it.
func setDefaults(v *viper.Viper, cfg *Config) {
	d := cfg.Defaults
	v.SetDefault("defaults.byte", d.Byte)
	v.SetDefault("defaults.short", d.Short)
	v.SetDefault("defaults.int", d.Int)
	v.SetDefault("defaults.long", d.Long)
	v.SetDefault("defaults.float", d.Float)
	v.SetDefault("defaults.double", d.Double)
	v.SetDefault("defaults.bool", d.Bool)
	v.SetDefault("defaults.char", d.Char)
	v.SetDefault("defaults.string", d.String)
	v.SetDefault("defaults.bytes", d.Bytes)
	v.SetDefault("defaults.chars", d.Chars)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.development", cfg.Logging.Development)
	v.SetDefault("logging.encoding", cfg.Logging.Encoding)
	v.SetDefault("logging.output_paths", cfg.Logging.OutputPaths)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("column.materialize_warn_rows", cfg.Column.MaterializeWarnRows)
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Substituted values are not scanned again.
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
