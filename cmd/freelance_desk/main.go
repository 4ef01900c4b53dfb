// Package main provides the freelance_desk CLI for managing clients,
// projects and the documents generated from them.
package main

import (
	"os"

	"github.com/jonathan/freelance-desk/internal/notify"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	apiURLFlag string
	stateFile  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "freelance_desk",
	Short: "Freelance business desk",
	Long: "freelance_desk keeps clients and projects in a spreadsheet-backed remote store " +
		"and generates proposals, contracts, invoices and other business documents from them.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Remote API deployment URL (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state-file", "", "Path to the session state file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		notify.New(os.Stderr).APIError(err, err.Error())
		os.Exit(1)
	}
}
