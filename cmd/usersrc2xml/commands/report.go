package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/usersrc2xml/internal/errors"
	"github.com/thoreinstein/usersrc2xml/internal/logging"
)

// PrintError writes err and any suggestion it carries to w. Usage errors
// print nothing since the usage text was already shown.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errors.ErrUsage) {
		return
	}

	label := "Error:"
	if logging.SupportsColor(w) {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		label = c.Sprint(label)
	}
	fmt.Fprintf(w, "%s %v\n", label, err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(w, exitErr.Suggestion)
	}
}
