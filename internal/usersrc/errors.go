package usersrc

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel causes carried by ParseError.
var (
	ErrSyntax            = errors.New("syntax error")
	ErrShape             = errors.New("unexpected value shape")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrDuplicateBinding  = errors.New("binding defined more than once")
	ErrUnsupported       = errors.New("unsupported construct")
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// LoadError reports that a source file could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports that a source file was read but its content is not a
// valid userSrc definition. Line is 1-based and zero when unknown; Binding
// is set when the problem is inside a recognized binding.
type ParseError struct {
	Path    string
	Line    int
	Binding string
	Err     error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Binding != "" {
		return fmt.Sprintf("parsing %s: %s: %v", loc, e.Binding, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports that the output stream failed during emission.
// Lines before the failing one may already have been written.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing document: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
