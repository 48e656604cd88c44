package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard"
	"github.com/aretw0/stickyboard/internal/config"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	adapter    string
	format     string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stickyboard",
	Short: "A personal dashboard: sticky notes, remote users and todos, analytics and weather",
	Long: `stickyboard keeps prioritized sticky notes and todo completion overrides
in a local key/value store and serves them, together with remote users,
derived analytics and the weather, behind a login gate.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		c, err := config.Read(configPath)
		if err != nil {
			fatal("Error reading configuration", err)
		}
		if cmd.Flags().Changed("data") {
			c.DataDir = dataDir
		}
		if cmd.Flags().Changed("adapter") {
			c.Adapter = adapter
		}
		cfg = c
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openApp wires the dashboard from the loaded configuration.
func openApp() *stickyboard.App {
	app, err := stickyboard.New(cfg.DataDir,
		stickyboard.WithAdapter(cfg.Adapter),
		stickyboard.WithLogger(slog.Default()),
		stickyboard.WithRemote(cfg.Remote.BaseURL, cfg.Remote.Timeout),
		stickyboard.WithWeather(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Units),
		stickyboard.WithCredentials(cfg.Auth.Username, cfg.Auth.Password),
	)
	if err != nil {
		fatal("Error initializing stickyboard", err)
	}
	return app
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (overrides configuration)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
}
