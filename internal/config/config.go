package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/beetlebugorg/osmclip/internal/parser"
	"github.com/beetlebugorg/osmclip/pkg/osm"
)

// Config holds the settings of an extraction run that are not positional
// arguments.
//
// Boxes lists extra bounding boxes as "minLon,minLat,maxLon,maxLat"
// separated by semicolons, so the same form works in YAML, in
// OSMCLIP_BOXES and from repeated -box flags.
type Config struct {
	Output           string        `mapstructure:"output"`
	Boxes            string        `mapstructure:"boxes"`
	ProgressInterval int64         `mapstructure:"progress_interval"`
	LineEnding       string        `mapstructure:"line_ending"`
	Strict           bool          `mapstructure:"strict"`
	RequireMembers   bool          `mapstructure:"require_members"`
	MaxLineSize      int           `mapstructure:"max_line_size"`
	Log              LogConfig     `mapstructure:"log"`
	Metrics          MetricsConfig `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	// File receives Prometheus text format at exit when set.
	File string `mapstructure:"file"`
}

// Load reads configuration from defaults, an optional YAML file, the
// environment and finally overrides (explicitly set command-line flags).
//
// When file is empty, osmclip.yaml is looked up in . and ./configs and may
// be absent. A file named explicitly must exist.
func Load(file string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("output", "output.osm")
	v.SetDefault("boxes", "")
	v.SetDefault("progress_interval", osm.DefaultProgressInterval)
	v.SetDefault("line_ending", "lf")
	v.SetDefault("strict", false)
	v.SetDefault("require_members", false)
	v.SetDefault("max_line_size", parser.DefaultMaxLineSize)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.file", "")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("osmclip")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: OSMCLIP_LOG_LEVEL → log.level
	v.SetEnvPrefix("OSMCLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Output == "" {
		errs = append(errs, "output is required")
	}
	if c.ProgressInterval < 0 {
		errs = append(errs, fmt.Sprintf("progress_interval must not be negative, got %d", c.ProgressInterval))
	}
	switch strings.ToLower(c.LineEnding) {
	case "lf", "crlf":
	default:
		errs = append(errs, fmt.Sprintf("line_ending must be lf or crlf, got %q", c.LineEnding))
	}
	if c.MaxLineSize <= 0 {
		errs = append(errs, "max_line_size must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	for i, box := range c.boxList() {
		if _, err := osm.ParseBoundsString(box); err != nil {
			errs = append(errs, fmt.Sprintf("boxes[%d]: %v", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExtraBounds parses the configured extra boxes.
func (c *Config) ExtraBounds() ([]osm.Bounds, error) {
	boxes := c.boxList()
	out := make([]osm.Bounds, 0, len(boxes))
	for _, box := range boxes {
		b, err := osm.ParseBoundsString(box)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *Config) boxList() []string {
	var out []string
	for _, box := range strings.Split(c.Boxes, ";") {
		if box = strings.TrimSpace(box); box != "" {
			out = append(out, box)
		}
	}
	return out
}
