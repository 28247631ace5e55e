// Package config loads saferenv's optional rules file.
package config

import (
	"errors"
	"fmt"

	"github.com/saferenv/saferenv/internal/rules"
)

// ErrInvalidConfig wraps every error caused by the content of a config file.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the decoded rules file merged with SAFERENV_* overrides.
type Config struct {
	// Defaults enables the built-in patterns. Nil means not specified.
	Defaults    *bool         `koanf:"defaults"`
	RedactValue string        `koanf:"redact_value"`
	Rules       []PatternRule `koanf:"rules"`

	// Path is the file the config was read from, empty if none.
	Path string `koanf:"-"`
}

// PatternRule is one entry under rules:.
type PatternRule struct {
	Pattern string `koanf:"pattern"`
	Action  string `koanf:"action"`
}

// DefaultsEnabled reports whether the built-in patterns apply.
func (c *Config) DefaultsEnabled() bool {
	return c.Defaults == nil || *c.Defaults
}

// PatternActions converts the rules into builder input. Patterns are not
// compiled here; rules.Build reports invalid ones.
func (c *Config) PatternActions() ([]rules.PatternAction, error) {
	out := make([]rules.PatternAction, 0, len(c.Rules))
	for i, r := range c.Rules {
		action, err := rules.ParseAction(r.Action)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidConfig, i+1, err)
		}
		out = append(out, rules.PatternAction{Pattern: r.Pattern, Action: action})
	}
	return out, nil
}

// Validate checks the config without compiling patterns.
func (c *Config) Validate() error {
	for i, r := range c.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("%w: rule %d: pattern must be non-empty", ErrInvalidConfig, i+1)
		}
	}
	_, err := c.PatternActions()
	return err
}
