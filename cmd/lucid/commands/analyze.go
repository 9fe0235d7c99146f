package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfeld/lucid/internal/analytics"
	"github.com/mfeld/lucid/internal/export"
	"github.com/mfeld/lucid/internal/logging"
)

var (
	analyzeInput   string
	analyzeWindow  int
	analyzeTop     int
	analyzeBuckets int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute aggregate analytics over an explanation history",
	Long: `Analyze loads a JSONL explanation history and emits one JSON report
with the confidence trend, category and confidence distributions, factor
correlations, the factor importance trend, and outcome rates.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "",
		"Path to a JSONL explanation history (required)")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window-hours", 0,
		"Trend bucket size in hours (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0,
		"Top-N factors for the importance trend (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeBuckets, "buckets", 0,
		"Confidence histogram buckets (default from config)")
	_ = analyzeCmd.MarkFlagRequired("input")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("analyze")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	explanations, err := export.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	logger.Info("loaded %d explanations from %s", len(explanations), analyzeInput)

	opts := analytics.ReportOptions{
		TrendWindow:      cfg.TrendWindowDuration(),
		TopFactors:       cfg.TopFactors,
		HistogramBuckets: cfg.HistogramBuckets,
	}
	if analyzeWindow > 0 {
		opts.TrendWindow = time.Duration(analyzeWindow) * time.Hour
	}
	if analyzeTop > 0 {
		opts.TopFactors = analyzeTop
	}
	if analyzeBuckets > 0 {
		opts.HistogramBuckets = analyzeBuckets
	}

	report, err := analytics.BuildReport(cmd.Context(), explanations, opts)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
