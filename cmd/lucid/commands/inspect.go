package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeld/lucid/internal/explain"
	"github.com/mfeld/lucid/internal/export"
	"github.com/mfeld/lucid/internal/model"
)

var (
	inspectInput  string
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <decision-id>",
	Short: "Render one explanation from a history",
	Long: `Inspect finds an explanation by decision id in a JSONL history and
renders it as text or JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectInput, "input", "",
		"Path to a JSONL explanation history (required)")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text",
		"Output format: text or json")
	_ = inspectCmd.MarkFlagRequired("input")
}

func runInspect(cmd *cobra.Command, args []string) error {
	decisionID := args[0]

	explanations, err := export.ReadFile(inspectInput)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	var found *model.Explanation
	for _, e := range explanations {
		if e.DecisionID == decisionID {
			found = e
			break
		}
	}
	if found == nil {
		return &model.NotFoundError{ID: decisionID}
	}

	switch inspectFormat {
	case "json":
		data, err := explain.RenderJSON(found)
		if err != nil {
			return fmt.Errorf("failed to render explanation: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
	case "text":
		fmt.Fprint(os.Stdout, explain.TextSummary(found))
	default:
		return fmt.Errorf("unknown format %q (must be text or json)", inspectFormat)
	}
	return nil
}
