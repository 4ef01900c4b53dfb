package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/freelance-desk/internal/format"
	"github.com/jonathan/freelance-desk/internal/observability"
	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage projects",
}

var (
	projectInput        types.ProjectInput
	projectFeatures     []string
	projectDeliverables []string
	projectsClientID    string

	duplicateClient    types.ClientInput
	duplicateNewClient bool
)

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, optionally for one client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		var projects []types.Project
		if projectsClientID != "" {
			projects, err = api.ListClientProjects(ctx, projectsClientID)
		} else {
			projects, err = api.ListProjects(ctx)
		}
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			notifier(cmd).Info("No projects found")
			return nil
		}

		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{
				p.ProjectID.String(),
				p.ClientID.String(),
				p.ProjectTitle,
				p.Status,
				format.Date(p.StartDate),
				format.Date(p.EndDate),
				format.Currency(p.Budget.Float64(), appConfig.DefaultCurrency),
			})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "CLIENT", "TITLE", "STATUS", "START", "END", "BUDGET"}, rows)
		return nil
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		project, err := api.GetProject(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), project)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintProject(project, appConfig.DefaultCurrency)
		return nil
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		in := projectInput
		in.ProjectFeatures = joinLines(projectFeatures)
		in.Deliverables = joinLines(projectDeliverables)

		project, err := api.CreateProject(context.Background(), in)
		if err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Project %q created (%s)", project.ProjectTitle, project.ProjectID))
		return nil
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Update a project",
	Long:  "Updates the fields given as flags. Fields not given keep their stored values.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		existing, err := api.GetProject(ctx, args[0])
		if err != nil {
			return err
		}
		set := projectInput
		set.ProjectFeatures = joinLines(projectFeatures)
		set.Deliverables = joinLines(projectDeliverables)
		in := mergeProjectInput(projectInputFrom(existing), set, cmd.Flags())

		project, err := api.UpdateProject(ctx, args[0], in)
		if err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Project %q updated", project.ProjectTitle))
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}
		if err := api.DeleteProject(context.Background(), args[0]); err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Project %s deleted", args[0]))
		return nil
	},
}

var projectsDuplicateCmd = &cobra.Command{
	Use:   "duplicate <project-id>",
	Short: "Copy a project as a draft",
	Long: "Copies a project as a draft. With --new-client the copy is attached to a " +
		"client created from the --client-* flags.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := authedClient()
		if err != nil {
			return err
		}

		req := types.DuplicateDraftRequest{OriginalProjectID: args[0]}
		if duplicateNewClient {
			nc := duplicateClient
			req.NewClientData = &nc
		}

		project, err := api.DuplicateProjectAsDraft(context.Background(), req)
		if err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("Draft %s created from %s", project.ProjectID, args[0]))
		return nil
	},
}

func projectInputFrom(p *types.Project) types.ProjectInput {
	return types.ProjectInput{
		ClientID:         p.ClientID.String(),
		ProjectTitle:     p.ProjectTitle,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		ProjectFeatures:  joinLines(p.ProjectFeatures),
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Budget:           p.Budget.Float64(),
		PaymentTerms:     p.PaymentTerms,
		Deliverables:     joinLines(p.Deliverables),
		Status:           p.Status,
	}
}

// mergeProjectInput overlays the flags the user actually set onto base.
func mergeProjectInput(base, set types.ProjectInput, flags *pflag.FlagSet) types.ProjectInput {
	overlay := map[string]func(){
		"client-id":         func() { base.ClientID = set.ClientID },
		"title":             func() { base.ProjectTitle = set.ProjectTitle },
		"short-description": func() { base.ShortDescription = set.ShortDescription },
		"long-description":  func() { base.LongDescription = set.LongDescription },
		"feature":           func() { base.ProjectFeatures = set.ProjectFeatures },
		"start":             func() { base.StartDate = set.StartDate },
		"end":               func() { base.EndDate = set.EndDate },
		"budget":            func() { base.Budget = set.Budget },
		"payment-terms":     func() { base.PaymentTerms = set.PaymentTerms },
		"deliverable":       func() { base.Deliverables = set.Deliverables },
		"status":            func() { base.Status = set.Status },
	}
	for name, apply := range overlay {
		if flags.Changed(name) {
			apply()
		}
	}
	return base
}

func joinLines(items []string) string {
	return strings.Join(items, "\n")
}

func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&projectInput.ClientID, "client-id", "", "Owning client ID")
	cmd.Flags().StringVar(&projectInput.ProjectTitle, "title", "", "Project title")
	cmd.Flags().StringVar(&projectInput.ShortDescription, "short-description", "", "One-line summary")
	cmd.Flags().StringVar(&projectInput.LongDescription, "long-description", "", "Full description")
	cmd.Flags().StringArrayVar(&projectFeatures, "feature", nil, "Feature (repeatable)")
	cmd.Flags().StringVar(&projectInput.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&projectInput.EndDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&projectInput.Budget, "budget", 0, "Budget amount")
	cmd.Flags().StringVar(&projectInput.PaymentTerms, "payment-terms", "", "Payment terms")
	cmd.Flags().StringArrayVar(&projectDeliverables, "deliverable", nil, "Deliverable (repeatable)")
	cmd.Flags().StringVar(&projectInput.Status, "status", "", "Status: draft, active or done")
}

func init() {
	projectsListCmd.Flags().StringVar(&projectsClientID, "client-id", "", "Only list projects of this client")

	projectsGetCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw record as JSON")
	addProjectFlags(projectsCreateCmd)
	addProjectFlags(projectsUpdateCmd)

	projectsDuplicateCmd.Flags().BoolVar(&duplicateNewClient, "new-client", false, "Attach the draft to a new client")
	projectsDuplicateCmd.Flags().StringVar(&duplicateClient.Name, "client-name", "", "New client contact name")
	projectsDuplicateCmd.Flags().StringVar(&duplicateClient.Company, "client-company", "", "New client company")
	projectsDuplicateCmd.Flags().StringVar(&duplicateClient.Email, "client-email", "", "New client email")
	projectsDuplicateCmd.Flags().StringVar(&duplicateClient.Phone, "client-phone", "", "New client phone")

	projectsCmd.AddCommand(projectsListCmd, projectsGetCmd, projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd, projectsDuplicateCmd)
	rootCmd.AddCommand(projectsCmd)
}
