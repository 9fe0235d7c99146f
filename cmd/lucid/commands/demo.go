package commands

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/mfeld/lucid/internal/analytics"
	"github.com/mfeld/lucid/internal/explain"
	"github.com/mfeld/lucid/internal/export"
	"github.com/mfeld/lucid/internal/logging"
	"github.com/mfeld/lucid/internal/model"
)

var (
	demoOutput string
	demoCount  int
	demoSeed   int64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate a synthetic explanation history",
	Long: `Demo runs a synthetic loan-review agent through the engine, appends the
resulting explanations to the store, and writes the history as JSONL.
Useful for exploring the analyze and inspect commands without a real
agent.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoOutput, "output", "history.jsonl",
		"Path of the JSONL history to write")
	demoCmd.Flags().IntVar(&demoCount, "count", 50,
		"Number of decisions to generate")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 1,
		"Random seed for reproducible histories")
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("demo")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	engine := explain.NewEngine(cfg)
	rng := rand.New(rand.NewSource(demoSeed))

	decisions := []string{"approve", "reject", "escalate"}
	outcomes := []string{
		analytics.OutcomeSuccess,
		analytics.OutcomeSuccess,
		analytics.OutcomeFailure,
		analytics.OutcomeUnknown,
	}

	for i := 0; i < demoCount; i++ {
		score := 300 + rng.Intn(550)
		income := 20000.0 + rng.Float64()*150000.0
		delinquent := rng.Intn(10) == 0

		ctx, err := model.NewContext([]model.Factor{
			{Name: "credit_score", Category: "financial", Value: score},
			{Name: "annual_income", Category: "financial", Value: income},
			{Name: "delinquent", Category: "risk", Value: delinquent},
			{Name: "region", Category: "demographic", Value: pick(rng, []string{"north", "south", "east", "west"})},
		})
		if err != nil {
			return fmt.Errorf("failed to build context: %w", err)
		}

		decision := decisions[rng.Intn(len(decisions))]
		chain := []model.ReasoningStep{
			{
				Index:              0,
				Description:        fmt.Sprintf("reviewed credit score %d against threshold", score),
				SupportingEvidence: []string{"credit_score"},
			},
			{
				Index:              1,
				Description:        "weighed income stability and delinquency history",
				SupportingEvidence: []string{"annual_income", "delinquent"},
			},
			{
				Index:       2,
				Description: fmt.Sprintf("concluded %s", decision),
			},
		}

		confidence := 0.5 + rng.Float64()*0.5
		metadata := map[string]interface{}{
			"outcome":  outcomes[rng.Intn(len(outcomes))],
			"reviewer": "demo",
		}

		if _, err := engine.Generate(decision, ctx, chain, confidence, metadata); err != nil {
			return fmt.Errorf("failed to generate explanation: %w", err)
		}
	}

	history := engine.Store().All()
	if err := export.WriteFile(demoOutput, history); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	logger.Info("wrote %d explanations to %s", len(history), demoOutput)
	fmt.Printf("Wrote %d explanations to %s\n", len(history), demoOutput)
	return nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
