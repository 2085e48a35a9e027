package tree

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// SyntaxError reports a document that is not well-formed in its format.
type SyntaxError struct {
	Format Format
	Line   int
	Column int
	Err    error
}

func newSyntaxError(format Format, err error) *SyntaxError {
	if format == "" {
		format = FormatTOML
	}
	e := &SyntaxError{Format: format, Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		e.Line, e.Column = derr.Position()
	}
	return e
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s at line %d, column %d: %v", e.Format, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Format, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
