// Package errors provides error handling conventions for the usersrc2xml CLI.
//
// This package defines an ExitError type for CLI exit code handling, exit
// code constants, and thin wrappers around github.com/cockroachdb/errors so
// callers need a single import for construction and inspection.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (missing file, malformed source, etc.)
//   - ExitSystem (2): System-related error (broken output stream, etc.)
//   - ExitUsage (-1): Usage text was printed instead of running a conversion;
//     the operating system reports this as 255
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(loadErr, "Check that the file exists and is readable")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
