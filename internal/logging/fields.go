package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Document statistics fields.
	FieldBlocks   = "blocks"
	FieldInlines  = "inlines"
	FieldBytesIn  = "bytes_in"
	FieldBytesOut = "bytes_out"

	// Configuration fields.
	FieldConfig = "config"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
