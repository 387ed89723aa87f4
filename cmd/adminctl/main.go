package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adminctl",
		Short: "Helpers for operating the admin web service",
		Long: `adminctl prepares and checks the environment of the admin web service.

  adminctl hash-password          Hash a password for ADMIN_PASSWORD_HASH
  adminctl check-config           Load and validate the environment`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newHashPasswordCmd(),
		newCheckConfigCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}
