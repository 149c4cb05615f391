package configloader

import (
	"slices"
	"strings"

	"github.com/knadh/koanf/providers/env"
)

// EnvPrefix is the prefix for all stylefmt environment variables.
const EnvPrefix = "STYLEFMT_"

// RuleKeys are the rule configuration keys, as written in config files.
//
//nolint:gochecknoglobals // Read-only lookup table.
var RuleKeys = []string{
	"indent",
	"use-tabs",
	"color-hex-case",
	"color-hex-length",
	"string-quotes",
	"blank-line-before-rule",
	"max-empty-lines",
	"final-newline",
}

// EnvKey maps an environment variable to a dashed key.
// STYLEFMT_COLOR_HEX_CASE becomes color-hex-case.
func EnvKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_", "-")
}

// ruleEnvProvider reads STYLEFMT_* variables that name rule keys. Tool
// settings such as STYLEFMT_JOBS share the prefix and are left to the CLI.
func ruleEnvProvider() *env.Env {
	return env.Provider(EnvPrefix, ".", func(name string) string {
		key := EnvKey(name)
		if !slices.Contains(RuleKeys, key) {
			return ""
		}
		return key
	})
}

// EnvVarName returns the environment variable for a dashed key.
func EnvVarName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
