// Package cli provides the Cobra command for stylefmt.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/stylefmt/internal/configloader"
	"github.com/yaklabco/stylefmt/internal/ui/pretty"
)

// flagGroupAnnotation marks flags that choose what a run does, so help can
// list them apart from the options that tune it.
const (
	flagGroupAnnotation = "stylefmt_group"
	flagGroupMode       = "mode"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	// Command name/usage styling
	Command lipgloss.Style

	// Section headers (Usage, Input modes, Options, etc.)
	Heading lipgloss.Style

	// Flag names (--flag, -f)
	Flag lipgloss.Style

	// Flag and mode descriptions
	Description lipgloss.Style

	// Example invocations
	Example lipgloss.Style

	// Dim text (flag types, secondary info)
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		return newNoColorHelpStyles()
	}
	return newColorHelpStyles()
}

func newColorHelpStyles() *HelpStyles {
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorHelpStyles() *HelpStyles {
	plain := lipgloss.NewStyle()
	return &HelpStyles{
		Command:     plain,
		Heading:     plain,
		Flag:        plain,
		Description: plain,
		Example:     plain,
		Dim:         plain,
	}
}

// helpRow is one two-column line of a help section.
type helpRow struct {
	usage string
	desc  string
}

func inputModes() []helpRow {
	return []helpRow{
		{"stylefmt FILE [OUTPUT]", "format FILE in place, or write the result to OUTPUT"},
		{"stylefmt -l FILE [FILE...]", "format a list of files, skipping non-stylesheets"},
		{"stylefmt -R DIR", "format every .css and .scss file under DIR"},
		{"stylefmt < FILE", "read standard input and write standard output"},
	}
}

// exitCodeHelp documents the process exit codes in ascending order.
func exitCodeHelp() []helpRow {
	return []helpRow{
		{fmt.Sprint(ExitSuccess), "success, including batch runs where some files failed"},
		{fmt.Sprint(ExitFailure), "a single file or standard input could not be formatted"},
		{fmt.Sprint(ExitInvalidUsage), "invalid arguments or settings"},
		{fmt.Sprint(ExitConfigError), "the configuration could not be resolved"},
		{fmt.Sprint(ExitInterrupted), "interrupted"},
	}
}

// ruleEnvHelp lists the variables that override rule settings.
func ruleEnvHelp() []helpRow {
	rows := make([]helpRow, 0, len(configloader.RuleKeys))
	for _, key := range configloader.RuleKeys {
		rows = append(rows, helpRow{configloader.EnvVarName(key), "overrides " + key})
	}
	return rows
}

// HelpFormatter provides styled help output for the stylefmt command.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// templateFuncs returns template functions for styled help rendering.
func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleExample":            h.styles.Example.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"modeFlags":               func(cmd *cobra.Command) *pflag.FlagSet { return flagGroup(cmd, true) },
		"optionFlags":             func(cmd *cobra.Command) *pflag.FlagSet { return flagGroup(cmd, false) },
		"inputModes":              func() string { return h.renderRows(inputModes(), h.styles.Command) },
		"exitCodes":               func() string { return h.renderRows(exitCodeHelp(), h.styles.Flag) },
		"ruleEnv":                 func() string { return h.renderRows(ruleEnvHelp(), h.styles.Flag) },
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// usageTemplate is printed on usage errors.
func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{ styleCommand .UseLine }}

Run "{{ styleCommand (print .CommandPath " --help") }}" for input modes and options.
`
}

// helpTemplate returns the styled help template.
func (h *HelpFormatter) helpTemplate() string {
	return `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}{{ styleHeading "Usage:" }}
  {{ styleCommand .UseLine }}

{{ styleHeading "Input modes:" }}
{{ inputModes }}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{ styleHeading "Modes:" }}
{{ styleFlagsUsage (modeFlags .) }}

{{ styleHeading "Options:" }}
{{ styleFlagsUsage (optionFlags .) }}

{{ styleHeading "Environment:" }}
  STYLEFMT_<OPTION> sets any option above, for example STYLEFMT_JOBS=4.
  Flags take precedence. Rule settings override config files:
{{ ruleEnv }}

{{ styleHeading "Exit codes:" }}
{{ exitCodes }}
`
}

// flagGroup collects the command's flags that are (or are not) mode flags.
func flagGroup(cmd *cobra.Command, mode bool) *pflag.FlagSet {
	group := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
		isMode := len(flag.Annotations[flagGroupAnnotation]) > 0 &&
			flag.Annotations[flagGroupAnnotation][0] == flagGroupMode
		if isMode == mode {
			group.AddFlag(flag)
		}
	})
	return group
}

// markModeFlags annotates the named flags as mode flags for help output.
func markModeFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = flags.SetAnnotation(name, flagGroupAnnotation, []string{flagGroupMode})
	}
}

// renderRows lays out two-column help rows with the first column padded.
func (h *HelpFormatter) renderRows(rows []helpRow, first lipgloss.Style) string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row.usage))
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		padding := strings.Repeat(" ", width-len(row.usage))
		lines = append(lines, "  "+first.Render(row.usage)+padding+"   "+h.styles.Description.Render(row.desc))
	}
	return strings.Join(lines, "\n")
}

// styleFlagsUsage formats flag usage with styling.
func (h *HelpFormatter) styleFlagsUsage(flags *pflag.FlagSet) string {
	usages := flags.FlagUsages()
	if usages == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine applies styling to a single flag usage line of the form
// "  -f, --flag type   description".
func (h *HelpFormatter) styleFlagLine(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	trimmed := strings.TrimLeft(line, " ")
	leadingSpaces := len(line) - len(trimmed)

	parts := splitFlagLine(trimmed)
	if len(parts) != 2 {
		return line
	}

	prefix := strings.Repeat(" ", leadingSpaces)
	return prefix + h.styleFlagPart(parts[0]) + "   " + h.styles.Description.Render(parts[1])
}

// splitFlagLine splits a flag line into [flagPart, description] at the first
// run of two or more spaces.
func splitFlagLine(line string) []string {
	inSpaces := false
	spaceStart := -1
	minSpaceGap := 2

	for idx, char := range line {
		if char == ' ' {
			if !inSpaces {
				inSpaces = true
				spaceStart = idx
			}
			continue
		}
		if inSpaces && idx-spaceStart >= minSpaceGap {
			return []string{
				strings.TrimRight(line[:spaceStart], " "),
				line[idx:],
			}
		}
		inSpaces = false
	}

	return []string{line}
}

// styleFlagPart colors flag names and dims their value types.
func (h *HelpFormatter) styleFlagPart(flagPart string) string {
	var result strings.Builder
	for i, token := range strings.Fields(flagPart) {
		if i > 0 {
			result.WriteString(" ")
		}

		if !strings.HasPrefix(token, "-") {
			result.WriteString(h.styles.Dim.Render(token))
			continue
		}
		clean, hasComma := strings.CutSuffix(token, ",")
		result.WriteString(h.styles.Flag.Render(clean))
		if hasComma {
			result.WriteString(",")
		}
	}
	return result.String()
}

// ApplyToCommand installs the styled help and usage output on cmd.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		usageTmpl, err := template.New("usage").Funcs(funcs).Parse(h.usageTemplate())
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return usageTmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		helpTmpl, err := template.New("help").Funcs(funcs).Parse(h.helpTemplate())
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := helpTmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
