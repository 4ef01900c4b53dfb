package main

import (
	"context"
	"fmt"

	"github.com/jonathan/freelance-desk/internal/observability"
	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var clientsCmd = &cobra.Command{
	Use:     "clients",
	Aliases: []string{"client"},
	Short:   "Manage clients",
}

var clientInput types.ClientInput

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		clients, err := api.ListClients(context.Background())
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			notifier(cmd).Info("No clients found")
			return nil
		}

		rows := make([][]string, 0, len(clients))
		for _, c := range clients {
			rows = append(rows, []string{c.ClientID.String(), c.Name, c.Company, c.Email})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "COMPANY", "EMAIL"}, rows)
		return nil
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <client-id>",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		client, err := api.GetClient(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), client)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintClient(client)
		return nil
	},
}

var clientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		client, err := api.CreateClient(context.Background(), clientInput)
		if err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Client %s created (%s)", client.DisplayName(), client.ClientID))
		return nil
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <client-id>",
	Short: "Update a client",
	Long:  "Updates the fields given as flags. Fields not given keep their stored values.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		existing, err := api.GetClient(ctx, args[0])
		if err != nil {
			return err
		}
		in := mergeClientInput(clientInputFrom(existing), clientInput, cmd.Flags())

		client, err := api.UpdateClient(ctx, args[0], in)
		if err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Client %s updated", client.DisplayName()))
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		if err := api.DeleteClient(context.Background(), args[0]); err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Client %s deleted", args[0]))
		return nil
	},
}

func clientInputFrom(c *types.Client) types.ClientInput {
	return types.ClientInput{
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   c.Phone.String(),
		Address: c.Address,
		Notes:   c.Notes,
	}
}

// mergeClientInput overlays the flags the user actually set onto base.
func mergeClientInput(base, set types.ClientInput, flags *pflag.FlagSet) types.ClientInput {
	if flags.Changed("name") {
		base.Name = set.Name
	}
	if flags.Changed("company") {
		base.Company = set.Company
	}
	if flags.Changed("email") {
		base.Email = set.Email
	}
	if flags.Changed("phone") {
		base.Phone = set.Phone
	}
	if flags.Changed("address") {
		base.Address = set.Address
	}
	if flags.Changed("notes") {
		base.Notes = set.Notes
	}
	return base
}

func addClientFlags(cmd *cobra.Command, in *types.ClientInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Contact name")
	cmd.Flags().StringVar(&in.Company, "company", "", "Company name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Address, "address", "", "Postal address")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-form notes")
}

func init() {
	clientsGetCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw record as JSON")
	addClientFlags(clientsCreateCmd, &clientInput)
	addClientFlags(clientsUpdateCmd, &clientInput)

	clientsCmd.AddCommand(clientsListCmd, clientsGetCmd, clientsCreateCmd, clientsUpdateCmd, clientsDeleteCmd)
	rootCmd.AddCommand(clientsCmd)
}
