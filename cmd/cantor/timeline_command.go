// ABOUTME: Timeline subcommand
// ABOUTME: Previews per-group timestamps without mixing or exporting
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/oliverlab/cantor/internal/builder"
	"github.com/oliverlab/cantor/internal/episode"
	"github.com/oliverlab/cantor/internal/notes"
)

func newTimelineCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <episode.toml>",
		Short: "Show where each group starts without building the track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			ep, err := episode.Load(args[0])
			if err != nil {
				return err
			}

			speech, entries, err := builder.Assemble(cfg, ep)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprintln(out, notes.RenderTable(ep, entries))
			} else if err := notes.WritePlain(out, ep, entries); err != nil {
				return err
			}
			fmt.Fprintf(out, "total %d ms\n", speech.DurationMS())
			return nil
		},
	}
}
