package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/freelance-desk/internal/db"
	"github.com/jonathan/freelance-desk/internal/rendering"
	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Browse the document archive",
}

var (
	documentsProjectID string
	documentsLimit     int
	documentsFormat    string
	documentsOut       string
)

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived documents, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		database, err := openArchive(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		docs, err := database.ListDocuments(ctx, documentsProjectID, documentsLimit)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			notifier(cmd).Info("No archived documents")
			return nil
		}

		rows := make([][]string, 0, len(docs))
		for _, d := range docs {
			rows = append(rows, []string{d.ID.String(), d.ProjectID, d.Kind, d.Reference, d.CreatedAt.Format("2006-01-02 15:04")})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "PROJECT", "KIND", "REFERENCE", "CREATED"}, rows)
		return nil
	},
}

var documentsShowCmd = &cobra.Command{
	Use:   "show <document-id>",
	Short: "Print or save an archived document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document ID: %w", err)
		}
		outFormat, err := rendering.ParseFormat(documentsFormat)
		if err != nil {
			return err
		}

		ctx := context.Background()
		database, err := openArchive(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		stored, err := database.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("document not found: %s", id)
		}

		renderer, err := newRenderer()
		if err != nil {
			return err
		}
		body, err := renderer.Encode(ctx, archivedDocument(stored), outFormat, appConfig.PDFTimeout())
		if err != nil {
			return err
		}

		if documentsOut == "" || documentsOut == "-" {
			_, err = cmd.OutOrStdout().Write(body)
			return err
		}
		if err := writeOutput(documentsOut, body); err != nil {
			return err
		}
		notifier(cmd).Success(fmt.Sprintf("%s written to %s", stored.Title, documentsOut))
		return nil
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Remove a document from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document ID: %w", err)
		}

		ctx := context.Background()
		database, err := openArchive(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		deleted, err := database.DeleteDocument(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("document not found: %s", id)
		}
		notifier(cmd).Success(fmt.Sprintf("Document %s deleted", id))
		return nil
	},
}

func archivedDocument(d *db.Document) *rendering.Document {
	return &rendering.Document{
		Kind:      rendering.Kind(d.Kind),
		Title:     d.Title,
		Reference: d.Reference,
		Filename:  d.Filename,
		HTML:      d.HTML,
	}
}

func init() {
	documentsListCmd.Flags().StringVarP(&documentsProjectID, "project-id", "p", "", "Only list documents of this project")
	documentsListCmd.Flags().IntVar(&documentsLimit, "limit", db.DefaultListLimit, "Maximum number of documents")

	documentsShowCmd.Flags().StringVarP(&documentsFormat, "format", "f", string(rendering.FormatText), "Output format: html, page, text or pdf")
	documentsShowCmd.Flags().StringVarP(&documentsOut, "out", "o", "", "Output file path (default: stdout)")

	documentsCmd.AddCommand(documentsListCmd, documentsShowCmd, documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}
