package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"edu-messenger/advisor"
	"edu-messenger/app"
	"edu-messenger/auth"
	"edu-messenger/db"
	"edu-messenger/llm"
	"edu-messenger/ui"
	"edu-messenger/utils"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"

	// Global flags
	configPath string
	verbose    bool
)

// rootCmd launches the desktop messenger
var rootCmd = &cobra.Command{
	Use:     "edu-messenger",
	Short:   "EduMessenger - a chat client with a built-in architecture mentor",
	Version: version,
	Long: `EduMessenger is a desktop chat client used to study backend design.

Running it without a subcommand opens the window. The subcommands work on the
same local database without starting the UI.`,
	SilenceUsage: true,
	RunE:         runGUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug output to the console")

	rootCmd.AddCommand(askCmd, registerCmd, usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// services holds everything a command needs; close releases it in reverse order
type services struct {
	config     *utils.Config
	logger     *utils.Logger
	database   *db.DB
	store      *auth.Store
	controller *app.Controller
}

func (r *services) close() {
	if r.database != nil {
		r.database.Close()
	}
	if r.logger != nil {
		r.logger.Info("EduMessenger stopped")
		r.logger.Close()
	}
}

// bootstrap loads the configuration and assembles the controller
func bootstrap(ctx context.Context) (*services, error) {
	logger, err := utils.NewLogger(utils.GetLogPath(), verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	r := &services{logger: logger}
	logger.Info("Starting EduMessenger v%s", version)

	path := configPath
	if path == "" {
		path, err = utils.EnsureDefaultConfig()
		if err != nil {
			r.close()
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}
	logger.Info("Using config file: %s", path)

	r.config, err = utils.LoadConfig(path)
	if err != nil {
		r.close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	r.database, err = db.New(r.config.Data.DBPath)
	if err != nil {
		r.close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("Database initialized: %s", r.config.Data.DBPath)

	r.store = auth.NewStore(r.database, auth.WithHashCost(r.config.Auth.HashCost))

	gateway := advisor.NewGateway(
		newProvider(ctx, r.config, logger),
		time.Duration(r.config.Advisor.TimeoutSeconds)*time.Second,
		logger.Named("advisor"),
	)

	r.controller = app.NewController(app.Deps{
		Sessions: auth.NewSessions(r.store),
		Advisor:  gateway,
		Logger:   logger,
	})
	return r, nil
}

// newProvider builds the configured advisor provider. A missing or broken
// provider is logged and the advisor answers with its fallback text.
func newProvider(ctx context.Context, config *utils.Config, logger *utils.Logger) llm.Provider {
	name := config.Advisor.Provider
	pc, ok := config.Advisor.Providers[name]
	if !ok {
		logger.Warn("Advisor provider %q is not configured", name)
		return nil
	}

	provider, err := llm.NewProvider(ctx, name, llm.Config{
		ProviderName: pc.DisplayName,
		APIKey:       pc.APIKey,
		BaseURL:      pc.BaseURL,
		Model:        pc.DefaultModel,
		MaxTokens:    pc.MaxTokens,
		Temperature:  pc.Temperature,
	})
	if err != nil {
		logger.Error("Failed to initialize advisor provider %s: %v", name, err)
		return nil
	}
	if err := provider.ValidateConfig(); err != nil {
		logger.Warn("Advisor provider %s is not usable: %v", name, err)
	}
	logger.Info("Advisor provider: %s (%s)", provider.Name(), provider.Model())
	return provider
}

func runGUI(cmd *cobra.Command, args []string) error {
	r, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer r.close()

	window := ui.NewApp(r.config, r.controller, r.logger)
	r.logger.Info("Application started")
	window.Run()
	return nil
}
