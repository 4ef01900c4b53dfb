package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jonathan/freelance-desk/internal/apiclient"
	"github.com/jonathan/freelance-desk/internal/config"
	"github.com/jonathan/freelance-desk/internal/db"
	"github.com/jonathan/freelance-desk/internal/notify"
	"github.com/jonathan/freelance-desk/internal/rendering"
	"github.com/jonathan/freelance-desk/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Resolved for every command by initApp.
var (
	appConfig config.Config
	logger    = zap.NewNop()
)

// initApp layers configuration (flag > state > env > file > defaults) and
// sets up logging.
func initApp(_ *cobra.Command, _ []string) error {
	var fileCfg config.Config
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		fileCfg = *loaded
	}

	store, err := stateStore()
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}

	flags := config.Config{APIBaseURL: apiURLFlag, Verbose: verbose}
	appConfig = config.Resolve(flags, config.Config{APIBaseURL: st.APIBaseURL}, config.FromEnv(), fileCfg, config.Defaults())
	if err := appConfig.Validate(); err != nil {
		return err
	}

	level := zapcore.ErrorLevel
	if appConfig.Verbose {
		level = zapcore.DebugLevel
	}
	logger, err = newLogger(level)
	return err
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

func stateStore() (*state.Store, error) {
	path := stateFile
	if path == "" {
		var err error
		path, err = state.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return state.NewStore(path), nil
}

// authedClient checks the session flag and builds an API client.
func authedClient() (*apiclient.Client, error) {
	store, err := stateStore()
	if err != nil {
		return nil, err
	}
	if err := store.RequireAuth(); err != nil {
		return nil, err
	}
	return newAPIClient()
}

func newAPIClient() (*apiclient.Client, error) {
	if appConfig.APIBaseURL == "" {
		return nil, fmt.Errorf("API URL not configured: set %s, pass --api-url or run 'freelance_desk config set-api-url'", config.EnvAPIURL)
	}
	return apiclient.New(apiclient.Config{
		BaseURL: appConfig.APIBaseURL,
		Timeout: appConfig.Timeout(),
		Logger:  logger,
	})
}

func newRenderer() (*rendering.Renderer, error) {
	catalog, err := rendering.LoadCatalog(appConfig.LayoutsDir)
	if err != nil {
		return nil, err
	}
	return rendering.NewRenderer(catalog)
}

// openArchive connects to the document archive and ensures its schema.
func openArchive(ctx context.Context) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("document archive requires %s", config.EnvDatabaseURL)
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func notifier(cmd *cobra.Command) *notify.Notifier {
	return notify.New(cmd.OutOrStdout())
}

// jsonOutput selects JSON over boxed summaries for the get commands.
var jsonOutput bool

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, _ = fmt.Fprintln(w, t.Render())
}
