package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefmt/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "stylefmt", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	shorthands := map[string]string{
		"diff":           "d",
		"list":           "l",
		"recursive":      "R",
		"config":         "c",
		"config-basedir": "b",
		"ignore-path":    "i",
		"version":        "v",
		"jobs":           "j",
	}
	for name, short := range shorthands {
		flag := cmd.Flags().Lookup(name)
		if assert.NotNil(t, flag, name) {
			assert.Equal(t, short, flag.Shorthand, name)
		}
	}

	for _, name := range []string{
		"ignore-disables", "stdin-filename", "ignore-pattern", "diff-tool",
		"print-config", "init", "color", "debug",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"-v"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestHelpExitsSuccessfully(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(err))
	assert.Contains(t, out.String(), "--recursive")
	assert.Contains(t, out.String(), "--stdin-filename")
}

func TestHelpSections(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	require.NoError(t, cmd.Execute())

	help := out.String()
	for _, heading := range []string{"Usage:", "Input modes:", "Examples:", "Modes:", "Options:", "Environment:", "Exit codes:"} {
		assert.Contains(t, help, heading)
	}
	assert.Contains(t, help, "stylefmt -R DIR")
	assert.Contains(t, help, "STYLEFMT_COLOR_HEX_CASE")
	assert.NotContains(t, help, "Available Commands")

	// Mode flags are listed before the options section, options after it.
	modes := strings.Index(help, "Modes:")
	options := strings.Index(help, "Options:")
	require.Less(t, modes, options)
	assert.Greater(t, strings.Index(help, "--recursive"), modes)
	assert.Less(t, strings.Index(help, "--recursive"), options)
	assert.Greater(t, strings.Index(help, "--ignore-path"), options)
	assert.Contains(t, help[strings.Index(help, "Exit codes:"):], "65")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "plain error is usage", err: errors.New("unknown flag: --nope"), want: cli.ExitInvalidUsage},
		{name: "explicit code", err: &cli.ExitError{Code: cli.ExitConfigError, Err: errors.New("bad")}, want: cli.ExitConfigError},
		{name: "wrapped code", err: fmt.Errorf("outer: %w", &cli.ExitError{Code: cli.ExitFailure}), want: cli.ExitFailure},
		{name: "cancelled", err: &cli.ExitError{Code: cli.ExitFailure, Err: context.Canceled}, want: cli.ExitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := &cli.ExitError{Code: cli.ExitFailure, Err: inner}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "exit status 64", (&cli.ExitError{Code: cli.ExitInvalidUsage}).Error())
}
