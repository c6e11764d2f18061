// Package main provides the entry point for the VettEdge recruiting dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/vettedge/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vettedge",
	Short: "VettEdge AI-powered hiring assistant",
	Long:  "VettEdge serves the recruiting dashboard for reviewing, filtering and exporting screened candidates per job role.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(logging.FromEnv())
	},
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
