package config

import (
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/usersrc2xml/internal/errors"
	"github.com/thoreinstein/usersrc2xml/internal/usersrc/loader"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidIndent indicates the indent contains something other than spaces or tabs.
	ErrInvalidIndent = errors.New("indent must contain only spaces and tabs")

	// ErrInvalidFormat indicates an unrecognized source format name.
	ErrInvalidFormat = errors.New("invalid source format")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if strings.Trim(cfg.Indent, " \t") != "" {
		errs = append(errs, &FieldError{Field: "indent", Value: cfg.Indent, Err: ErrInvalidIndent})
	}

	if cfg.Format != "" && !slices.Contains(loader.Formats(), loader.Format(cfg.Format)) {
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: ErrInvalidFormat})
	}

	return errs
}

// FieldError represents an error for a specific settings field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + strconv.Quote(e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
