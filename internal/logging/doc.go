// Package logging provides structured logging for the usersrc2xml CLI using slog.
//
// Log output always goes to stderr (or a log file); stdout is reserved for
// the generated XML document and usage text.
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	logger := logging.ForTest(t)
package logging
