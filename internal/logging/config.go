package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel      = "MARQUEE_LOG_LEVEL"
	EnvLogFormat     = "MARQUEE_LOG_FORMAT"
	EnvLogSink       = "MARQUEE_LOG_SINK"
	EnvLogFile       = "MARQUEE_LOG_FILE"
	EnvLogAddSource  = "MARQUEE_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = "MARQUEE_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "MARQUEE_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "MARQUEE_LOG_MAX_AGE_DAYS"
)

// Config holds the logging settings. Pointer fields distinguish "unset"
// from an explicit value so file config and env overrides can layer.
type Config struct {
	Level     *string `yaml:"level,omitempty"`
	Format    *string `yaml:"format,omitempty"`
	Sink      *string `yaml:"sink,omitempty"`
	File      *string `yaml:"file,omitempty"`
	AddSource *bool   `yaml:"add_source,omitempty"`

	MaxSizeMB  *int `yaml:"max_size_mb,omitempty"`
	MaxBackups *int `yaml:"max_backups,omitempty"`
	MaxAgeDays *int `yaml:"max_age_days,omitempty"`
}

// DefaultConfig is quiet on stderr: a TUI owns the terminal, so anything
// chattier belongs in the file sink.
func DefaultConfig() Config {
	level := "error"
	format := string(FormatText)
	sink := string(SinkStderr)
	addSource := false
	return Config{
		Level:     &level,
		Format:    &format,
		Sink:      &sink,
		AddSource: &addSource,
	}
}

// Merge overlays set fields of override onto c.
func (c Config) Merge(override Config) Config {
	if override.Level != nil {
		c.Level = override.Level
	}
	if override.Format != nil {
		c.Format = override.Format
	}
	if override.Sink != nil {
		c.Sink = override.Sink
	}
	if override.File != nil {
		c.File = override.File
	}
	if override.AddSource != nil {
		c.AddSource = override.AddSource
	}
	if override.MaxSizeMB != nil {
		c.MaxSizeMB = override.MaxSizeMB
	}
	if override.MaxBackups != nil {
		c.MaxBackups = override.MaxBackups
	}
	if override.MaxAgeDays != nil {
		c.MaxAgeDays = override.MaxAgeDays
	}
	return c
}

// WithEnv overlays MARQUEE_LOG_* environment overrides.
func (c Config) WithEnv() Config {
	applyString := func(dst **string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = &v
		}
	}
	applyBool := func(dst **bool, env string) {
		raw := strings.TrimSpace(os.Getenv(env))
		if raw == "" {
			return
		}
		v := raw != "0" && !strings.EqualFold(raw, "false") && !strings.EqualFold(raw, "off")
		*dst = &v
	}
	applyInt := func(dst **int, env string) {
		raw := strings.TrimSpace(os.Getenv(env))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return
		}
		*dst = &n
	}

	applyString(&c.Level, EnvLogLevel)
	applyString(&c.Format, EnvLogFormat)
	applyString(&c.Sink, EnvLogSink)
	applyString(&c.File, EnvLogFile)
	applyBool(&c.AddSource, EnvLogAddSource)
	applyInt(&c.MaxSizeMB, EnvLogMaxSizeMB)
	applyInt(&c.MaxBackups, EnvLogMaxBackups)
	applyInt(&c.MaxAgeDays, EnvLogMaxAgeDays)
	return c
}

// Normalize lowercases and trims string fields, drops empties, clamps
// negative rotation settings and validates the result.
func (c Config) Normalize() (Config, error) {
	normalizeString := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	c.Level = normalizeString(c.Level)
	c.Format = normalizeString(c.Format)
	c.Sink = normalizeString(c.Sink)
	if c.File != nil {
		v := strings.TrimSpace(*c.File)
		if v == "" {
			c.File = nil
		} else {
			c.File = &v
		}
	}
	clamp := func(v **int) {
		if *v != nil && **v < 0 {
			zero := 0
			*v = &zero
		}
	}
	clamp(&c.MaxSizeMB)
	clamp(&c.MaxBackups)
	clamp(&c.MaxAgeDays)
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Level != nil {
		switch *c.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("logging: unknown level %q", *c.Level)
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return fmt.Errorf("logging: unknown format %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkFile, SinkNone:
		default:
			return fmt.Errorf("logging: unknown sink %q", *c.Sink)
		}
	}
	return nil
}
