package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoflow/internal/api"
	"github.com/abhisek/lingoflow/internal/config"
	"github.com/abhisek/lingoflow/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "lingoflow",
	Short: "Practice a language by chatting through everyday scenarios",
	Long: "LingoFlow is a terminal client for the LingoFlow practice server. Pick a scenario,\n" +
		"chat with the model until you reach the goal, and review past conversations.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Backend URL (overrides LINGOFLOW_SERVER_URL)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides LINGOFLOW_CONFIG)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides LINGOFLOW_LOG_FILE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(modelsCmd)
}

// env is what every command needs to talk to the backend.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	client *api.Client
	closer io.Closer
}

func (e *env) Close() error {
	return e.closer.Close()
}

// setup loads configuration with flags taking precedence, then builds the
// logger and API client.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("server"); v != "" {
		cfg.Server.URL = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logger.Debug("config loaded", "server", cfg.Server.URL, "timeout", cfg.Server.Timeout)

	return &env{
		cfg:    cfg,
		logger: logger,
		client: api.New(cfg.Server.URL, cfg.Server.Timeout, api.WithLogger(logger)),
		closer: closer,
	}, nil
}
