package main

import (
	"context"

	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/jonathan/freelance-desk/internal/uiutil"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialise the remote store",
}

var setupReq types.SetupRequest

var setupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Create the sheets and store the operator settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		req := setupReq
		generated := req.AccessKey == ""
		if generated {
			req.AccessKey = uiutil.RandomString(uiutil.DefaultRandomLength)
		}
		if err := client.Setup(context.Background(), req); err != nil {
			return err
		}
		note := notifier(cmd)
		note.Success("Setup complete")
		if generated {
			note.Info("Generated access key: " + req.AccessKey)
		}
		return nil
	},
}

var setupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the remote store has been initialised",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		status, err := client.SetupStatus(context.Background())
		if err != nil {
			return err
		}
		if status.IsSetup {
			notifier(cmd).Success("Remote store is set up")
		} else {
			notifier(cmd).Warning("Remote store is not set up: run 'freelance_desk setup run'")
		}
		return nil
	},
}

func init() {
	setupRunCmd.Flags().StringVar(&setupReq.YourName, "name", "", "Your name (required)")
	setupRunCmd.Flags().StringVar(&setupReq.YourEmail, "email", "", "Your email (required)")
	setupRunCmd.Flags().StringVar(&setupReq.AccessKey, "access-key", "", "Access key for the deployment (generated when empty)")
	setupRunCmd.Flags().StringVar(&setupReq.DefaultCurrency, "currency", "", "Default currency code, e.g. IDR")

	setupCmd.AddCommand(setupRunCmd, setupStatusCmd)
	rootCmd.AddCommand(setupCmd)
}
