// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Run fields.
	FieldMode       = "mode"
	FieldSink       = "sink"
	FieldJobs       = "jobs"
	FieldConfig     = "config"
	FieldIgnorePath = "ignore_path"
	FieldIdentifier = "identifier"
	FieldPattern    = "pattern"
	FieldDiffTool   = "diff_tool"
	FieldDuration   = "duration"
	FieldRules      = "rules"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
