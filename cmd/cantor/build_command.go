// ABOUTME: Build subcommand
// ABOUTME: Runs the full decode-stitch-effects-mix-export pipeline
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

func newBuildCommand(configFlag *string) *cobra.Command {
	var notesFlag string
	var overwriteFlag bool

	cmd := &cobra.Command{
		Use:   "build <episode.toml>",
		Short: "Build an episode track from its manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if overwriteFlag {
				cfg.Output.Overwrite = true
			}

			ep, err := episode.Load(args[0])
			if err != nil {
				return err
			}

			track, err := builder.Build(cfg, ep)
			if err != nil {
				return err
			}

			if notesFlag != "" {
				if err := notes.WriteFile(notesFlag, ep, track.Entries); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprintln(out, notes.RenderTable(ep, track.Entries))
			} else if err := notes.WritePlain(out, ep, track.Entries); err != nil {
				return err
			}
			fmt.Fprintln(out, track.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&notesFlag, "notes", "", "Write the timestamp listing to this file")
	cmd.Flags().BoolVar(&overwriteFlag, "overwrite", false, "Re-encode even if the output file exists")

	return cmd
}
