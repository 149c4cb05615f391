package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/stylefmt/internal/configloader"
	"github.com/yaklabco/stylefmt/internal/logging"
	"github.com/yaklabco/stylefmt/internal/ui/pretty"
	"github.com/yaklabco/stylefmt/pkg/diff"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
	"github.com/yaklabco/stylefmt/pkg/ignore"
	"github.com/yaklabco/stylefmt/pkg/rules"
	"github.com/yaklabco/stylefmt/pkg/runner"
	"github.com/yaklabco/stylefmt/pkg/sink"
	"github.com/yaklabco/stylefmt/pkg/source"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

func runFormat(cmd *cobra.Command, args []string, flags *modeFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Version does no other processing, not even settings.
	if flags.version {
		printVersion(cmd.OutOrStdout(), info)
		return nil
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	s, err := loadSettings(cmd.Flags())
	if err != nil {
		return reportFailure(logger, ExitInvalidUsage, "invalid settings", err)
	}
	if s.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return withCode(ExitFailure, fmt.Errorf("get working directory: %w", err))
	}

	if flags.init {
		path, err := writeInitConfig(workDir)
		if err != nil {
			return reportFailure(logger, ExitFailure, "init failed", err)
		}
		logger.Info("created configuration file", logging.FieldPath, path)
		return nil
	}

	mode, err := source.Select(source.Selection{
		List:            flags.list,
		Recursive:       flags.recursive,
		Args:            args,
		Stdin:           cmd.InOrStdin(),
		StdinIdentifier: s.StdinFilename,
	})
	if err != nil {
		return reportFailure(logger, ExitInvalidUsage, "invalid arguments", err)
	}

	var differ diff.Differ
	if flags.diff {
		differ, err = diff.New(s.DiffTool)
		if err != nil {
			return reportFailure(logger, ExitInvalidUsage, "invalid arguments", err)
		}
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: s.Config,
		Basedir:      s.ConfigBasedir,
	})
	if err != nil {
		return reportFailure(logger, ExitConfigError, "invalid configuration", err)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}

	if flags.printConfig {
		out, err := loaded.Config.ToYAMLWithHeader(configHeader(loaded.Path, rules.DefaultRegistry))
		if err != nil {
			return withCode(ExitConfigError, err)
		}
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return withCode(ExitFailure, fmt.Errorf("write config: %w", err))
		}
		return nil
	}

	opts := &format.Options{
		ConfigFile:      loaded.Path,
		IgnorePath:      s.IgnorePath,
		IgnorePatterns:  s.IgnorePatterns,
		IgnoreDisables:  s.IgnoreDisables,
		StdinIdentifier: s.StdinFilename,
		Config:          loaded.Config,
	}
	if s.ConfigBasedir != "" {
		opts.ConfigBasedir = fsutil.Resolve(s.ConfigBasedir, workDir)
	}

	logger.Debug("starting",
		logging.FieldMode, mode.Name(),
		logging.FieldWorkingDir, workDir,
		logging.FieldConfig, loaded.Path,
		logging.FieldIgnorePath, opts.IgnorePath,
		logging.FieldRules, strings.Join(rules.DefaultRegistry.Names(), ","))

	if _, ok := mode.(source.StandardInput); ok {
		hintInteractiveStdin(cmd.InOrStdin(), logger)
	}

	filter := ignore.New(ctx, workDir, opts)
	if err := filter.LoadErr(); err != nil {
		logger.Warn("ignore file unavailable, ignoring nothing",
			logging.FieldIgnorePath, opts.IgnorePath, logging.FieldError, err)
	}

	pending, err := source.New(workDir, filter).Collect(ctx, mode)
	if err != nil {
		return withCode(ExitFailure, err)
	}

	out := pickSink(cmd.OutOrStdout(), mode, differ, s.Color, workDir)
	formatter := format.New(syntax.SCSS{}, rules.NewEngine(nil))

	result, err := runner.New(formatter, out).Run(ctx, pending, runner.Options{
		Jobs:   s.Jobs,
		Format: opts,
	})
	if err != nil {
		return withCode(ExitInterrupted, err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("format failed",
				logging.FieldPath, outcome.Name(),
				logging.FieldError, outcome.Error)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesEmitted,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, result.Duration)

	if mode.Batch() {
		if result.HasErrors() {
			styles := pretty.NewStyles(pretty.IsColorEnabled(s.Color, cmd.ErrOrStderr()))
			_, _ = io.WriteString(cmd.ErrOrStderr(), styles.FormatSummaryOneLine(result.Stats))
		}
		// Per-file failures never fail a batch.
		return nil
	}

	if result.HasErrors() {
		return &ExitError{Code: ExitFailure, Err: result.Err(), Reported: true}
	}
	return nil
}

// configHeader names where the printed configuration came from and which
// rules it drives.
func configHeader(path string, registry *rules.Registry) string {
	var b strings.Builder
	if path != "" {
		b.WriteString("# resolved from " + path + "\n")
	} else {
		b.WriteString("# stylefmt defaults\n")
	}
	b.WriteString("# rules:\n")
	for _, rule := range registry.Rules() {
		fmt.Fprintf(&b, "#   %s: %s\n", rule.Name(), rule.Description())
	}
	return b.String()
}

// reportFailure logs err on the run's logger and marks it reported so it is
// not printed again on exit.
func reportFailure(logger *log.Logger, code int, msg string, err error) error {
	logger.Error(msg, logging.FieldError, err)
	return &ExitError{Code: code, Err: err, Reported: true}
}

// pickSink chooses where results go: a diff on request, standard output
// for stdin, otherwise the files themselves.
func pickSink(stdout io.Writer, mode source.Mode, differ diff.Differ, colorMode, workDir string) sink.Sink {
	switch {
	case differ != nil:
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, stdout))
		return sink.NewDiffPreview(differ, stdout, styles, workDir)
	case isStdin(mode):
		return sink.NewStreamToStdout(stdout)
	default:
		return sink.WriteIfChanged{}
	}
}

func isStdin(mode source.Mode) bool {
	_, ok := mode.(source.StandardInput)
	return ok
}

// hintInteractiveStdin tells a user at a terminal that stylefmt is waiting
// for input.
func hintInteractiveStdin(in io.Reader, logger *log.Logger) {
	file, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return
	}
	logger.Info("reading stylesheet from standard input; press Ctrl-D when done")
}
