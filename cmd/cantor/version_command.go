// ABOUTME: Version subcommand
// ABOUTME: Prints the product name and version
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oliverlab/cantor/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cantor version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Product, version.Version)
		},
	}
}
