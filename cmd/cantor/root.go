// ABOUTME: Root cobra command and shared flag handling
// ABOUTME: Wires build, timeline, init, and version subcommands
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/oliverlab/cantor/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logFileFlag string

	rootCmd := &cobra.Command{
		Use:           "cantor",
		Short:         "Assemble spoken-word episode tracks",
		Long:          "cantor stitches pre-rendered speech clips into one episode track:\ntimed segments over a looping background bed, exported with per-group\ntimestamps for show notes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logFileFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Build configuration file path")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(newBuildCommand(&configFlag))
	rootCmd.AddCommand(newTimelineCommand(&configFlag))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig returns defaults when no config file is named.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogging(logFile string) error {
	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}
