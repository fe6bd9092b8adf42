// Package main is the saltpass command: it derives per-site passwords from
// a master password, either interactively or from piped input.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	cmd := newRootCmd(term.IsTerminal(int(os.Stdin.Fd())))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "saltpass: %v\n", err)
		os.Exit(1)
	}
}
