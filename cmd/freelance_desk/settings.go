package main

import (
	"context"

	"github.com/jonathan/freelance-desk/internal/observability"
	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the operator settings printed on documents",
}

var settingsInput types.SettingsInput

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		settings, err := api.GetSettings(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), settings)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSettings(settings)
		return nil
	},
}

var settingsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update settings",
	Long:  "Updates the fields given as flags. Fields not given keep their stored values.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		current, err := api.GetSettings(ctx)
		if err != nil {
			return err
		}
		in := types.SettingsInput{
			YourName:        current.YourName,
			YourTitle:       current.YourTitle,
			YourEmail:       current.YourEmail,
			YourPhone:       current.YourPhone.String(),
			DefaultCurrency: current.DefaultCurrency,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.YourName = settingsInput.YourName
		}
		if flags.Changed("title") {
			in.YourTitle = settingsInput.YourTitle
		}
		if flags.Changed("email") {
			in.YourEmail = settingsInput.YourEmail
		}
		if flags.Changed("phone") {
			in.YourPhone = settingsInput.YourPhone
		}
		if flags.Changed("currency") {
			in.DefaultCurrency = settingsInput.DefaultCurrency
		}

		if _, err := api.UpdateSettings(ctx, in); err != nil {
			return err
		}
		notifier(cmd).Success("Settings saved")
		return nil
	},
}

func init() {
	settingsGetCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw record as JSON")
	settingsUpdateCmd.Flags().StringVar(&settingsInput.YourName, "name", "", "Your name")
	settingsUpdateCmd.Flags().StringVar(&settingsInput.YourTitle, "title", "", "Your professional title")
	settingsUpdateCmd.Flags().StringVar(&settingsInput.YourEmail, "email", "", "Your email")
	settingsUpdateCmd.Flags().StringVar(&settingsInput.YourPhone, "phone", "", "Your phone number")
	settingsUpdateCmd.Flags().StringVar(&settingsInput.DefaultCurrency, "currency", "", "Default currency code, e.g. IDR")

	settingsCmd.AddCommand(settingsGetCmd, settingsUpdateCmd)
	rootCmd.AddCommand(settingsCmd)
}
