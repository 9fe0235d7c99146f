// Package commands implements the lucid CLI: offline analysis and
// inspection of explanation histories produced by the engine.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeld/lucid/internal/config"
	"github.com/mfeld/lucid/internal/logging"
)

const Version = "0.1.0"

var (
	logLevelFlag string
	configFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "lucid",
	Short: "Lucid - Decision Explainability and Analytics",
	Long: `Lucid builds structured, reproducible explanations for LLM-driven agent
decisions and derives analytics (trends, correlations, distributions,
comparisons) over a recorded explanation history.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Initialize(logLevelFlag)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to a YAML config file (category weights, analytics defaults)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(demoCmd)
}

// loadConfig returns the configured engine config, or the defaults when
// no --config flag was given.
func loadConfig() (*config.Config, error) {
	if configFlag == "" {
		return config.Default(), nil
	}
	return config.Load(configFlag)
}

// HandleError prints an error and exits.
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}
