package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Encoding fields.
	FieldFlavor      = "flavor"
	FieldFormat      = "format"
	FieldCompression = "compression"
	FieldDryRun      = "dry_run"
	FieldJobs        = "jobs"

	// Per-document fields.
	FieldSections = "sections"
	FieldStyles   = "styles"
	FieldCards    = "cards"
	FieldEmbeds   = "embeds"
	FieldBytes    = "bytes"
	FieldDigest   = "digest"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion     = "version"
	FieldWireVersion = "wire_version"
	FieldCommit      = "commit"
	FieldBuilt       = "built"
)
