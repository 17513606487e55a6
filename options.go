package consolecaptor

import (
	"fmt"

	env "github.com/netflix/go-env"

	"github.com/nethoundsh/consolecaptor/internal/lines"
)

// Options controls how captured text is split into lines. Options is a
// plain value: the With methods return modified copies.
//
// The zero value does not trim whitespace; start from DefaultOptions to get
// the usual behavior.
type Options struct {
	// AllowEmptyLines keeps lines that are empty after optional trimming.
	AllowEmptyLines bool
	// TrimWhitespace strips leading and trailing whitespace from each line
	// before empty lines are filtered.
	TrimWhitespace bool
}

// DefaultOptions drops empty lines and trims whitespace.
func DefaultOptions() Options {
	return Options{AllowEmptyLines: false, TrimWhitespace: true}
}

func (o Options) WithAllowEmptyLines(allow bool) Options {
	o.AllowEmptyLines = allow
	return o
}

func (o Options) WithTrimWhitespace(trim bool) Options {
	o.TrimWhitespace = trim
	return o
}

func (o Options) policy() lines.Policy {
	return lines.Policy{AllowEmpty: o.AllowEmptyLines, Trim: o.TrimWhitespace}
}

type envOptions struct {
	AllowEmptyLines bool `env:"CONSOLECAPTOR_ALLOW_EMPTY_LINES,default=false"`
	TrimWhitespace  bool `env:"CONSOLECAPTOR_TRIM_WHITESPACE,default=true"`
}

// OptionsFromEnv builds Options from CONSOLECAPTOR_ALLOW_EMPTY_LINES and
// CONSOLECAPTOR_TRIM_WHITESPACE. Unset variables keep the defaults.
func OptionsFromEnv() (Options, error) {
	var cfg envOptions
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Options{}, fmt.Errorf("loading capture options from environment: %w", err)
	}
	return Options{
		AllowEmptyLines: cfg.AllowEmptyLines,
		TrimWhitespace:  cfg.TrimWhitespace,
	}, nil
}
