package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/freelance-desk/internal/db"
	"github.com/jonathan/freelance-desk/internal/observability"
	"github.com/jonathan/freelance-desk/internal/rendering"
	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/jonathan/freelance-desk/internal/uiutil"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// renderAllParallelism bounds concurrent renders. PDF output starts one
// headless browser per document.
const renderAllParallelism = 3

var (
	renderProjectID string
	renderFormat    string
	renderOut       string
	renderArchive   bool
	renderCopy      bool
)

var renderCmd = &cobra.Command{
	Use:   "render <kind>",
	Short: "Generate one document for a project",
	Long: "Generates a business document (proposal, contract, invoice, budget, requirements, cv or uat) " +
		"from a project, its client and the operator settings.\n\n" +
		"The file is written to --out, or to the output directory under the document's default name. " +
		"Use --out - to print to stdout.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderAllProjectID string
	renderAllFormat    string
	renderAllOutDir    string
	renderAllArchive   bool
)

var renderAllCmd = &cobra.Command{
	Use:   "render-all",
	Short: "Generate every document for a project",
	Args:  cobra.NoArgs,
	RunE:  runRenderAll,
}

func init() {
	renderCmd.Flags().StringVarP(&renderProjectID, "project-id", "p", "", "Project ID (required)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", string(rendering.FormatPage), "Output format: html, page, text or pdf")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file path, or - for stdout")
	renderCmd.Flags().BoolVar(&renderArchive, "archive", false, "Also store the document in the archive (requires DATABASE_URL)")
	renderCmd.Flags().BoolVar(&renderCopy, "copy", false, "Copy the document to the clipboard instead of writing a file")
	_ = renderCmd.MarkFlagRequired("project-id")

	renderAllCmd.Flags().StringVarP(&renderAllProjectID, "project-id", "p", "", "Project ID (required)")
	renderAllCmd.Flags().StringVarP(&renderAllFormat, "format", "f", string(rendering.FormatPage), "Output format: html, page, text or pdf")
	renderAllCmd.Flags().StringVarP(&renderAllOutDir, "out-dir", "o", "", "Output directory (default: configured output dir)")
	renderAllCmd.Flags().BoolVar(&renderAllArchive, "archive", false, "Also store the documents in the archive (requires DATABASE_URL)")
	_ = renderAllCmd.MarkFlagRequired("project-id")

	rootCmd.AddCommand(renderCmd, renderAllCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	kind, err := renderer.ParseKind(args[0])
	if err != nil {
		return err
	}
	outFormat, err := rendering.ParseFormat(renderFormat)
	if err != nil {
		return err
	}
	if renderCopy && outFormat == rendering.FormatPDF {
		return fmt.Errorf("--copy cannot be used with pdf output")
	}

	ctx := context.Background()
	rc, err := loadRenderContext(ctx, renderProjectID)
	if err != nil {
		return err
	}

	doc, err := renderer.Render(kind, rc)
	if err != nil {
		return err
	}
	body, err := renderer.Encode(ctx, doc, outFormat, appConfig.PDFTimeout())
	if err != nil {
		return err
	}

	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(doc)
	}

	note := notifier(cmd)
	switch {
	case renderCopy:
		result, err := uiutil.CopyToClipboard(string(body), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if result == uiutil.CopiedToClipboard {
			note.Success(fmt.Sprintf("%s copied to clipboard", doc.Title))
		} else {
			note.Warning("Clipboard unavailable, document printed instead")
		}
	case renderOut == "-":
		if _, err := cmd.OutOrStdout().Write(body); err != nil {
			return err
		}
	default:
		path := renderOut
		if path == "" {
			path = filepath.Join(appConfig.OutputDir, doc.Filename+outFormat.Extension())
		}
		if err := writeOutput(path, body); err != nil {
			return err
		}
		note.Success(fmt.Sprintf("%s written to %s", doc.Title, path))
	}

	if renderArchive {
		return archiveDocuments(ctx, cmd, rc, []*rendering.Document{doc})
	}
	return nil
}

func runRenderAll(cmd *cobra.Command, _ []string) error {
	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	outFormat, err := rendering.ParseFormat(renderAllFormat)
	if err != nil {
		return err
	}
	outDir := renderAllOutDir
	if outDir == "" {
		outDir = appConfig.OutputDir
	}

	ctx := context.Background()
	rc, err := loadRenderContext(ctx, renderAllProjectID)
	if err != nil {
		return err
	}

	kinds := renderer.Kinds()
	docs := make([]*rendering.Document, len(kinds))
	paths := make([]string, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderAllParallelism)
	for i, kind := range kinds {
		g.Go(func() error {
			doc, err := renderer.Render(kind, rc)
			if err != nil {
				return err
			}
			body, err := renderer.Encode(gctx, doc, outFormat, appConfig.PDFTimeout())
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			path := filepath.Join(outDir, doc.Filename+outFormat.Extension())
			if err := writeOutput(path, body); err != nil {
				return err
			}
			docs[i] = doc
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Strings(paths)
	notifier(cmd).Success(fmt.Sprintf("%d documents written:\n%s", len(paths), strings.Join(paths, "\n")))

	if renderAllArchive {
		return archiveDocuments(ctx, cmd, rc, docs)
	}
	return nil
}

// loadRenderContext fetches the records a document is rendered from and
// applies the configured currency when settings carry none.
func loadRenderContext(ctx context.Context, projectID string) (types.RenderContext, error) {
	api, err := authedClient()
	if err != nil {
		return types.RenderContext{}, err
	}
	rc, err := api.RenderContext(ctx, projectID)
	if err != nil {
		return types.RenderContext{}, err
	}
	if strings.TrimSpace(rc.Settings.DefaultCurrency) == "" {
		rc.Settings.DefaultCurrency = appConfig.DefaultCurrency
	}
	return rc, nil
}

func archiveDocuments(ctx context.Context, cmd *cobra.Command, rc types.RenderContext, docs []*rendering.Document) error {
	database, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	for _, doc := range docs {
		id, err := database.SaveDocument(ctx, &db.Document{
			ProjectID: rc.Project.ProjectID.String(),
			ClientID:  rc.Client.ClientID.String(),
			Kind:      string(doc.Kind),
			Title:     doc.Title,
			Reference: doc.Reference,
			Filename:  doc.Filename,
			HTML:      doc.HTML,
		})
		if err != nil {
			return err
		}
		notifier(cmd).Info(fmt.Sprintf("%s archived as %s", doc.Title, id))
	}
	return nil
}

func writeOutput(path string, body []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
