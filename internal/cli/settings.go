package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/yaklabco/stylefmt/internal/configloader"
)

// settings are the tool options that may also come from STYLEFMT_* variables.
// Explicit flags win over the environment, which wins over flag defaults.
type settings struct {
	Config         string   `koanf:"config"`
	ConfigBasedir  string   `koanf:"config-basedir"`
	IgnorePath     string   `koanf:"ignore-path"`
	IgnoreDisables bool     `koanf:"ignore-disables"`
	IgnorePatterns []string `koanf:"ignore-pattern"`
	StdinFilename  string   `koanf:"stdin-filename"`
	DiffTool       string   `koanf:"diff-tool"`
	Jobs           int      `koanf:"jobs"`
	Color          string   `koanf:"color"`
	Debug          bool     `koanf:"debug"`
}

// settingKeys are the flags that read STYLEFMT_* overrides. Mode flags
// (--diff, --list, --recursive) only come from the command line.
//
//nolint:gochecknoglobals // Read-only lookup table.
var settingKeys = []string{
	"config",
	"config-basedir",
	"ignore-path",
	"ignore-disables",
	"ignore-pattern",
	"stdin-filename",
	"diff-tool",
	"jobs",
	"color",
	"debug",
}

func loadSettings(flags *pflag.FlagSet) (*settings, error) {
	k := koanf.New(".")

	envProvider := env.ProviderWithValue(configloader.EnvPrefix, ".", func(name, value string) (string, any) {
		key := configloader.EnvKey(name)
		if !slices.Contains(settingKeys, key) {
			return "", nil
		}
		if key == "ignore-pattern" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	// Only flags that were explicitly set override the environment.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("loading command flags: %w", err)
	}

	var s settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

// splitList parses a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
