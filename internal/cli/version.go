package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/stylefmt/internal/logging"
)

// printVersion writes the version line to w.
func printVersion(w io.Writer, info BuildInfo) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)

	logger.Info("stylefmt",
		logging.FieldVersion, info.Version,
		logging.FieldCommit, info.Commit,
		logging.FieldBuilt, info.Date,
	)
}
