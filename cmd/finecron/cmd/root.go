package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finecron/internal/config"
	"finecron/pkg/logx"
)

var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "finecron",
	Short: "Validate and manage finecron schedule expressions",
	Long: `finecron parses cron-like schedule expressions of the form

  [YYYY.MM.DD ][DOW ]HH:MM:SS[.fff]

and keeps named definitions in a config file or a local database.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	// Environment supplies defaults; explicit flags always win.
	env, _ := config.LoadEnv()
	defConfig := env.Config
	if defConfig == "" {
		defConfig = "finecron.yaml"
	}
	defDB := env.DB
	if defDB == "" {
		defDB = "finecron.db"
	}
	defLevel := env.LogLevel
	if defLevel == "" {
		defLevel = "info"
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", defConfig, "path to the schedules config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", defDB, "path to the definition database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defLevel, "log level (trace|debug|info|warn|error)")
}

func newLogger() logx.Logger {
	return logx.NewConsole(os.Stderr, flagLogLevel)
}
