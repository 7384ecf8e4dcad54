// Package main is the entry point for the usersrc2xml CLI.
package main

import (
	"os"

	"github.com/thoreinstein/usersrc2xml/cmd/usersrc2xml/commands"
	"github.com/thoreinstein/usersrc2xml/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.CodeOf(err))
	}
}
