// Package config loads the statarb YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gostatarb/internal/logger"
	"github.com/sartorproj/gostatarb/signals"
	"github.com/sartorproj/gostatarb/timeseries"
)

// Config is the root of the statarb YAML file.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Input   InputConfig   `yaml:"input"`
	Signals SignalsConfig `yaml:"signals"`
	Output  OutputConfig  `yaml:"output"`
}

// LogConfig selects log level, format and destination.
type LogConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format     string `yaml:"format" default:"console" validate:"oneof=json console"`
	Output     string `yaml:"output" default:"stderr" validate:"required"` // stdout, stderr, or file path
	TimeFormat string `yaml:"time_format"`
}

// InputConfig describes how the input CSV panel is read and transformed.
type InputConfig struct {
	DateColumn string   `yaml:"date_column"`
	Columns    []string `yaml:"columns"`
	DateFormat string   `yaml:"date_format" default:"2006-01-02"`
	Delimiter  string   `yaml:"delimiter" default:"," validate:"len=1"`
	SkipRows   int      `yaml:"skip_rows" validate:"gte=0"`
	Transform  string   `yaml:"transform" default:"none" validate:"oneof=none log logreturns diff"`
}

// SignalsConfig holds s-score estimation settings.
type SignalsConfig struct {
	PeriodsPerYear float64 `yaml:"periods_per_year" default:"252" validate:"gt=0"`
	Workers        int     `yaml:"workers" validate:"gte=0"` // 0 means GOMAXPROCS
}

// OutputConfig controls report format and numeric precision.
type OutputConfig struct {
	Format    string `yaml:"format" default:"table" validate:"oneof=table json"`
	Precision int    `yaml:"precision" default:"-1" validate:"gte=-1"` // -1 is the shortest exact form
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file. Keys missing from the
// file keep their defaults. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides it with STATARB_*
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("STATARB_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("STATARB_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("STATARB_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("STATARB_WORKERS: %w", err)
		}
		c.Signals.Workers = n
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("%s must have length %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// CSVOptions converts the input section for timeseries.LoadPanelCSV.
func (c InputConfig) CSVOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	opts.DateColumn = c.DateColumn
	opts.Columns = append([]string(nil), c.Columns...)
	if c.DateFormat != "" {
		opts.DateFormat = c.DateFormat
	}
	if c.Delimiter != "" {
		opts.Delimiter = []rune(c.Delimiter)[0]
	}
	opts.SkipRows = c.SkipRows
	return opts
}

// Estimation converts the signals section for the s-score estimator.
func (c SignalsConfig) Estimation() *signals.Config {
	cfg := signals.DefaultConfig()
	cfg.PeriodsPerYear = c.PeriodsPerYear
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	return cfg
}

// Logger converts the log section for logger.New.
func (c LogConfig) Logger() *logger.Config {
	return &logger.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     c.Output,
		TimeFormat: c.TimeFormat,
	}
}
