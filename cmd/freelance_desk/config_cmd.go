package main

import (
	"fmt"

	"github.com/jonathan/freelance-desk/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		shown := appConfig
		if shown.DatabaseURL != "" {
			shown.DatabaseURL = "(set)"
		}
		return printJSON(cmd.OutOrStdout(), shown)
	},
}

var configSetAPIURLCmd = &cobra.Command{
	Use:   "set-api-url <url>",
	Short: "Store the remote API deployment URL",
	Long:  "Stores the deployment URL in the session state file. It overrides the environment and config file, but not --api-url.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidate := config.Config{APIBaseURL: args[0]}
		if err := candidate.Validate(); err != nil {
			return err
		}

		store, err := stateStore()
		if err != nil {
			return err
		}
		if err := store.SetAPIBaseURL(args[0]); err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("API URL saved to %s", store.Path()))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetAPIURLCmd)
	rootCmd.AddCommand(configCmd)
}
