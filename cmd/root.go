package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teemow/hebcal/internal/logging"
)

// rootCmd represents the base command for the hebcal application
var rootCmd = &cobra.Command{
	Use:   "hebcal",
	Short: "Shabbat candle-lighting and havdalah times from hebcal.com",
	Long: `hebcal looks up candle-lighting, Torah portion and havdalah times for a
location on hebcal.com.

It can run as:
  - A standalone CLI tool (default)
  - An iCalendar exporter, once or on a cron schedule
  - An MCP (Model Context Protocol) server for AI assistants

A default location and preferences can be stored in a YAML profile
($XDG_CONFIG_HOME/hebcal/config.yaml or --config). Environment variables
may be kept in a .env file in the working directory.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupEnvironment,
}

// version will be set by main
var version = "dev"

var (
	logLevel   string
	logFormat  string
	envFile    string
	configPath string
)

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "hebcal version %s\n" .Version}}`)

	// If no subcommand is provided, look up this week's times
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "shabbat")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setupEnvironment loads the .env file and installs the process logger.
func setupEnvironment(cmd *cobra.Command, _ []string) error {
	if err := loadDotEnv(envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	logger, err := logging.New(logLevel, logFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is only an error when it was
// requested explicitly.
func loadDotEnv(path string, explicit bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText, "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File with environment variables to load")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Profile file (default: $XDG_CONFIG_HOME/hebcal/config.yaml)")

	rootCmd.AddCommand(newShabbatCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
