package main

import (
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := stateStore()
		if err != nil {
			return err
		}
		if err := store.Login(); err != nil {
			return err
		}
		notifier(cmd).Success("Logged in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := stateStore()
		if err != nil {
			return err
		}
		if err := store.Logout(); err != nil {
			return err
		}
		notifier(cmd).Info("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
