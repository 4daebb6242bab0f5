package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldConfig = "config"

	// Document fields.
	FieldFormat    = "format"
	FieldFlavor    = "flavor"
	FieldTextNodes = "text_nodes"

	// Fragment fields.
	FieldFragment = "fragment"
	FieldVersion  = "version"
	FieldRanges   = "ranges"
	FieldResolved = "resolved"
	FieldApplied  = "applied"
	FieldElement  = "element"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
