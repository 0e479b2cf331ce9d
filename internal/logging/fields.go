package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldFormat = "format"

	// Tokenizer fields.
	FieldBufferSize = "buffer_size"
	FieldCapacity   = "capacity"
	FieldLeftover   = "leftover"
	FieldBytesRead  = "bytes_read"
	FieldCells      = "cells"
	FieldRows       = "rows"
	FieldRow        = "row"
	FieldGrowths    = "growths"

	// Typed reader fields.
	FieldColumn  = "column"
	FieldValues  = "values"
	FieldEmpty   = "empty"
	FieldInvalid = "invalid"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
