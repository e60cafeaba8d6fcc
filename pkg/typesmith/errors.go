package typesmith

import (
	"errors"

	"github.com/hlop3z/typesmith/internal/tserr"
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these errors.
var (
	// ErrMissingSchemaPath is returned when no schema path is configured.
	ErrMissingSchemaPath = errors.New("typesmith: schema path required")

	// ErrMissingOutputPath is returned when Generate is called without an
	// output path. Use GenerateText to obtain the document directly.
	ErrMissingOutputPath = errors.New("typesmith: output path required")
)

// ErrorCode returns the stable machine-readable code attached to an error
// from this package ("E2001", "E4001", ...), or "" when the error carries
// no code.
func ErrorCode(err error) string {
	return string(tserr.GetErrorCode(err))
}
