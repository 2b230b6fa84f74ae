package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rapestimate/estimate-parser/config"
	"github.com/rapestimate/estimate-parser/logger"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded once per invocation before any subcommand runs
	cfg    *config.Config
	appLog *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "estimate-parser",
	Short: "Parse Xactimate insurance estimates into structured line items",
	Long: `estimate-parser extracts header fields, line items, category rollups and
totals from Xactimate-style insurance estimates.

  estimate-parser serve                  # run the HTTP API
  estimate-parser parse estimate.pdf     # print a category report
  estimate-parser parse estimate.pdf --json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded

		// command output owns stdout outside the server
		var w io.Writer = os.Stdout
		format := cfg.LogFormat
		if cmd.Name() != serveCmd.Name() {
			w = cmd.ErrOrStderr()
			format = "text"
			if logLevel == "" {
				cfg.LogLevel = "warn"
			}
		}
		appLog = logger.InitLoggerTo(w, cfg.LogLevel, format)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to an optional YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
}
