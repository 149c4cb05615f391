package format

import "github.com/yaklabco/stylefmt/pkg/config"

// Options carries the per-run settings shared by every unit.
// It is built once by the caller and must not be mutated afterwards.
type Options struct {
	// ConfigFile is the explicit rule configuration file, if any.
	ConfigFile string

	// ConfigBasedir resolves relative "extends" entries.
	ConfigBasedir string

	// IgnorePath is the gitignore-style pattern file.
	IgnorePath string

	// IgnorePatterns are extra glob patterns to skip.
	IgnorePatterns []string

	// IgnoreDisables makes the transform ignore stylefmt-disable comments.
	IgnoreDisables bool

	// StdinIdentifier names standard input in messages and to the transform.
	StdinIdentifier string

	// Config is the resolved rule configuration. Nil selects the defaults.
	Config *config.Config
}

// RuleConfig returns the rule configuration, falling back to the defaults.
// It is safe to call on a nil *Options.
func (o *Options) RuleConfig() *config.Config {
	if o == nil || o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
