package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "linkvault",
	Short:         "Personal link dashboard API",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Bare "linkvault" serves, like the container entrypoint expects
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}
