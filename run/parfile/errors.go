package parfile

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSection   = errors.New("entry outside of any section")
	ErrDuplicateSection = errors.New("duplicate section")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrMalformedLine    = errors.New("malformed line")
	ErrUnencodable      = errors.New("entry cannot be written as a parameter line")
)

// ParseError reports the line at which parsing stopped.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }
