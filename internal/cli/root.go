package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefmt/pkg/diff"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// modeFlags are the flags that pick what the run does.
type modeFlags struct {
	diff        bool
	list        string
	recursive   string
	version     bool
	init        bool
	printConfig bool
}

// NewRootCommand creates the stylefmt command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &modeFlags{}

	rootCmd := &cobra.Command{
		Use:   "stylefmt [options] [input-file [output-file]]",
		Short: "Format CSS and SCSS stylesheets",
		Long: `stylefmt rewrites stylesheets into a consistent style.

With one file argument the file is formatted in place; with two, the result
is written to the second path. Without arguments stylefmt reads standard
input and writes the formatted stylesheet to standard output. Files are only
written when their formatting changes.`,
		Example: `  stylefmt style.css              # format in place
  stylefmt in.scss out.scss        # write the result elsewhere
  stylefmt -d style.css            # preview changes as a diff
  stylefmt -l a.css b.scss c.css   # format a list of files
  stylefmt -R src                  # format every stylesheet under src
  cat a.css | stylefmt > b.css     # filter standard input`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags, info)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.Flags()
	f.BoolVarP(&flags.diff, "diff", "d", false, "print a diff of the changes instead of writing files")
	f.StringVarP(&flags.list, "list", "l", "", "format the given file and every file argument")
	f.StringVarP(&flags.recursive, "recursive", "R", "", "format every stylesheet under a directory")
	f.BoolVarP(&flags.version, "version", "v", false, "print version information")
	f.BoolVar(&flags.init, "init", false, "write a default config file to the working directory")
	f.BoolVar(&flags.printConfig, "print-config", false, "print the resolved rule configuration")

	markModeFlags(f, "diff", "list", "recursive", "version", "init", "print-config")

	f.StringP("config", "c", "", "path to a rule config file")
	f.StringP("config-basedir", "b", "", "base directory for relative extends in the config")
	f.StringP("ignore-path", "i", "", "path to a gitignore-style file of paths to skip")
	f.Bool("ignore-disables", false, "ignore stylefmt-disable comments")
	f.StringSlice("ignore-pattern", nil, "glob pattern of paths to skip (repeatable)")
	f.String("stdin-filename", "", "name used for standard input in messages")
	f.String("diff-tool", diff.ToolBuiltin, "diff implementation: builtin, git")
	f.IntP("jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.String("color", "auto", "colorize output: auto, always, never")
	f.Bool("debug", false, "enable debug logging")

	helpFormatter := NewHelpFormatter(colorFlagHint(), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// colorFlagHint reads the color mode for help output, which renders
// before flags are parsed.
func colorFlagHint() string {
	if mode := os.Getenv("STYLEFMT_COLOR"); mode != "" {
		return mode
	}
	return "auto"
}
