package main

import (
	"context"
	"fmt"

	"github.com/jonathan/freelance-desk/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document preview server",
	Long: "Starts a local HTTP server that renders documents as printable pages. " +
		"Open /documents/{kind}?project_id=... in a browser and print from there.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: configured serve_addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	api, err := authedClient()
	if err != nil {
		return err
	}
	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if appConfig.Verbose {
		level = zapcore.DebugLevel
	}
	serverLogger, err := newLogger(level)
	if err != nil {
		return err
	}
	defer func() { _ = serverLogger.Sync() }()

	addr := serveAddr
	if addr == "" {
		addr = appConfig.ServeAddr
	}

	ctx := context.Background()
	cfg := server.Config{
		Addr:       addr,
		Renderer:   renderer,
		Projects:   api,
		Logger:     serverLogger,
		PDFTimeout: appConfig.PDFTimeout(),
	}

	if appConfig.DatabaseURL != "" {
		database, err := openArchive(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		cfg.Archive = database
	} else {
		serverLogger.Info("archive disabled: DATABASE_URL not set")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
