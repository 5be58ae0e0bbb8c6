package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// execution behavior, keep the CLI flags in internal/cli in sync.
	Repository Repository
	Canonical  Canonical
	Output     Output
	Runtime    Runtime
}

type Repository struct {
	// Path is the root of the DAK repository to answer questions about
	// (see --repo). Defaults to the current directory.
	Path string `env:"DAKFAQ_REPOSITORY"`

	// Locale selects the narrative language as a BCP 47 tag (see --locale).
	// Unsupported locales fall back to English.
	Locale string `env:"DAKFAQ_LOCALE"`
}

type Canonical struct {
	// TTL is how long resolved canonical resources stay fresh before they
	// are fetched again (see --canonical-ttl). Must be > 0.
	TTL time.Duration `env:"DAKFAQ_CANONICAL_TTL"`
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string `env:"DAKFAQ_CONSOLE_FORMAT"`

	// ConsoleFilterOutcome filters console output by execution outcome
	// (see --console-filter-outcome). Allowed values: success, failure.
	ConsoleFilterOutcome []string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --emit/--out/--report for machine-readable output.
	NoConsole bool
}

type Runtime struct {
	// Concurrency controls parallelism for batch execution (see --concurrency).
	// Must be >= 1.
	Concurrency int `env:"DAKFAQ_CONCURRENCY"`

	// Timeout is the global timeout for a batch run (see --timeout).
	// Must be > 0.
	Timeout time.Duration `env:"DAKFAQ_TIMEOUT"`

	// Verbose enables more detailed diagnostics (primarily for canonical
	// resolution failures and registry load warnings).
	Verbose bool `env:"DAKFAQ_VERBOSE"`
}

func New() *Config {
	return &Config{
		Repository: Repository{
			Path:   ".",
			Locale: "en",
		},
		Canonical: Canonical{
			TTL: time.Hour,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 8,
			Timeout:     10 * time.Minute,
		},
	}
}

// FromEnv returns a Config with defaults overlaid by DAKFAQ_* environment
// variables. CLI flags are applied on top by the caller.
func FromEnv() (*Config, error) {
	c := New()
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Output.ConsoleFilterOutcome = splitCommaList(c.Output.ConsoleFilterOutcome)
	c.Output.Emit = splitCommaList(c.Output.Emit)

	if strings.TrimSpace(c.Repository.Path) == "" {
		return errors.New("--repo must not be empty")
	}
	if strings.TrimSpace(c.Repository.Locale) == "" {
		c.Repository.Locale = "en"
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for i, o := range c.Output.ConsoleFilterOutcome {
		v := normalizeEnumValue(o)
		if v != "success" && v != "failure" {
			return fmt.Errorf("unsupported --console-filter-outcome value: %s (must be one of: success, failure)", o)
		}
		c.Output.ConsoleFilterOutcome[i] = v
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v == "" {
			return errors.New("--emit must be one of: json, ndjson")
		}
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", v)
		}
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.Canonical.TTL <= 0 {
		return errors.New("--canonical-ttl must be > 0")
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
