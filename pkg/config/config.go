// Package config defines the rule configuration handed to the style transform.
// These types are pure data; loading and layering live in internal/configloader.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Case options for hex colors.
const (
	CaseLower = "lower"
	CaseUpper = "upper"
)

// Length options for hex colors.
const (
	LengthShort = "short"
	LengthLong  = "long"
)

// Quote options for strings.
const (
	QuotesDouble = "double"
	QuotesSingle = "single"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Config is the rule configuration for the default style transform.
// Empty string options mean "leave as written".
type Config struct {
	// Extends lists configuration files merged underneath this one.
	// Relative entries resolve against the config base directory.
	Extends []string `koanf:"extends" yaml:"extends,omitempty"`

	// Indent is the number of spaces per nesting level.
	Indent int `koanf:"indent" yaml:"indent"`

	// UseTabs indents with one tab per level instead of spaces.
	UseTabs bool `koanf:"use-tabs" yaml:"use-tabs"`

	// ColorHexCase is "lower", "upper" or "".
	ColorHexCase string `koanf:"color-hex-case" yaml:"color-hex-case"`

	// ColorHexLength is "short", "long" or "".
	ColorHexLength string `koanf:"color-hex-length" yaml:"color-hex-length"`

	// StringQuotes is "double", "single" or "".
	StringQuotes string `koanf:"string-quotes" yaml:"string-quotes"`

	// BlankLineBeforeRule puts one empty line before every rule and block
	// at-rule that is not the first node in its block.
	BlankLineBeforeRule bool `koanf:"blank-line-before-rule" yaml:"blank-line-before-rule"`

	// MaxEmptyLines caps consecutive empty lines kept between nodes.
	MaxEmptyLines int `koanf:"max-empty-lines" yaml:"max-empty-lines"`

	// FinalNewline ends non-empty output with exactly one newline.
	FinalNewline bool `koanf:"final-newline" yaml:"final-newline"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Indent:              DefaultIndent,
		ColorHexCase:        CaseLower,
		BlankLineBeforeRule: true,
		MaxEmptyLines:       1,
		FinalNewline:        true,
	}
}

// IndentUnit returns the text used for one nesting level.
func (c *Config) IndentUnit() string {
	if c.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", c.Indent)
}

// Validate reports the first invalid option.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("%w: indent must be between 0 and 16, got %d", ErrInvalidConfig, c.Indent)
	}
	if c.MaxEmptyLines < 0 {
		return fmt.Errorf("%w: max-empty-lines must not be negative, got %d", ErrInvalidConfig, c.MaxEmptyLines)
	}
	if err := oneOf("color-hex-case", c.ColorHexCase, CaseLower, CaseUpper); err != nil {
		return err
	}
	if err := oneOf("color-hex-length", c.ColorHexLength, LengthShort, LengthLong); err != nil {
		return err
	}
	return oneOf("string-quotes", c.StringQuotes, QuotesDouble, QuotesSingle)
}

func oneOf(key, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s, got %q",
		ErrInvalidConfig, key, strings.Join(allowed, ", "), value)
}
