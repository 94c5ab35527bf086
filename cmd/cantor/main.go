// ABOUTME: Entry point for the cantor CLI
// ABOUTME: Runs the root command and reports failures on stderr
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
