// Package commands implements the usersrc2xml command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/usersrc2xml/cmd"
	"github.com/thoreinstein/usersrc2xml/internal/config"
	"github.com/thoreinstein/usersrc2xml/internal/errors"
	"github.com/thoreinstein/usersrc2xml/internal/logging"
	"github.com/thoreinstein/usersrc2xml/internal/usersrc"
	"github.com/thoreinstein/usersrc2xml/internal/usersrc/loader"
)

// DebugEnv enables debug (1, true) or trace (2) logging when no -v is given.
const DebugEnv = config.EnvPrefix + "_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// formatFlag holds the value of the -f/--format flag.
var formatFlag string

// noEscape holds the value of the --no-escape flag.
var noEscape bool

// usageShown records that the help function ran during this execution.
var usageShown bool

// logCloser releases the --log-file handle after execution.
var logCloser io.Closer

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "",
		"source format: php, yaml, toml (default: detect from extension)")
	rootCmd.Flags().BoolVar(&noEscape, "no-escape", false,
		"write values without XML escaping, as older releases did")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"read settings from this file instead of the default locations")

	rootCmd.Version = buildinfo.String()
	rootCmd.SetVersionTemplate("usersrc2xml version {{.Version}}\n")

	rootCmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		printUsage(c.OutOrStdout(), c)
		usageShown = true
	})
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUserError(err, "Run 'usersrc2xml --help' for usage")
	})

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "usersrc2xml [flags] <path-to-config>",
	Short: "Convert a userSrc package configuration to XML",
	Long: `Extracts XML-formatted infos from the provided userSrc file, e.g. for
importing into Non-PHP scripts such as ToolBOSCore made in Python.`,
	Example: `  usersrc2xml /path/to/userSrc.php
  usersrc2xml --format yaml ./userSrc.conf`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			err := errors.Newf("expected one path, got %d arguments", len(args))
			return errors.NewUserError(err, "Run 'usersrc2xml --help' for usage")
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		printUsage(cmd.OutOrStdout(), cmd)
		return errors.NewUsageError()
	}
	path := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.NewUserError(err, "Check the settings file or pass --config")
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = formatFlag
	}
	if noEscape {
		cfg.Escape = false
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return errors.NewUserError(errs[0], "Valid formats: "+formatList())
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	src, err := loader.Load(ctx, path, loader.WithFormat(loader.Format(cfg.Format)))
	if err != nil {
		return errors.NewUserError(err, loadSuggestion(err))
	}

	emitter := usersrc.NewEmitter(cmd.OutOrStdout(),
		usersrc.WithIndent(cfg.Indent),
		usersrc.WithEscaping(cfg.Escape),
	)
	if err := emitter.Emit(src); err != nil {
		return errors.NewSystemError(err, "")
	}

	logger.Debug("document written", "path", path, "escaped", cfg.Escape)
	return nil
}

// loadSuggestion returns a hint for the common ways a source fails to load.
func loadSuggestion(err error) string {
	var loadErr *usersrc.LoadError
	switch {
	case errors.As(err, &loadErr):
		return "Check that the path names a readable userSrc file"
	case errors.Is(err, usersrc.ErrUnsupported):
		return "userSrc.php may only assign literal strings, numbers and arrays"
	case errors.Is(err, usersrc.ErrUnsupportedFormat):
		return "Valid formats: " + formatList()
	case errors.Is(err, usersrc.ErrShape):
		return "envVars and aliases hold name/value pairs; bashCode and cmdCode hold lists of lines"
	}
	return ""
}

func formatList() string {
	names := make([]string, 0, len(loader.Formats()))
	for _, f := range loader.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// printUsage writes the help text. It goes to stdout like the XML does so
// callers capturing output see why no document was produced. Flags and
// source formats are listed only with -v.
func printUsage(w io.Writer, c *cobra.Command) {
	fmt.Fprintf(w, "\n%s\n\n", c.Long)
	fmt.Fprintf(w, "Usage: %s /path/to/userSrc.php\n\n", c.Root().Name())
	if verbosity == 0 {
		return
	}
	fmt.Fprintf(w, "Sources may also be YAML, JSON or TOML with the keys %s.\n\n", sourceKeys)
	fmt.Fprintf(w, "Examples:\n%s\n\n", c.Example)
	fmt.Fprintf(w, "Flags:\n%s\n", c.Flags().FlagUsages())
}

const sourceKeys = "envVars, aliases, bashCode and cmdCode"

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(DebugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		logCloser = f
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command. Showing usage, whether asked for or
// because no path was given, is reported as an ExitUsage error.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	usageShown = false
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil && usageShown {
		return errors.NewUsageError()
	}
	return err
}
