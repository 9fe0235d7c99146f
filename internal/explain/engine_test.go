package explain

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeld/lucid/internal/config"
	"github.com/mfeld/lucid/internal/model"
)

func engineContext(t *testing.T) *model.Context {
	t.Helper()
	ctx, err := model.NewContext([]model.Factor{
		{Name: "credit_score", Category: "financial", Value: 720},
		{Name: "region", Value: "north"},
	})
	require.NoError(t, err)
	return ctx
}

func engineChain() []model.ReasoningStep {
	return []model.ReasoningStep{
		{Index: 0, Description: "checked credit", SupportingEvidence: []string{"credit_score"}},
		{Index: 1, Description: "approved"},
	}
}

func TestEngine_GenerateStoresExplanation(t *testing.T) {
	engine := NewEngine(nil)

	explanation, err := engine.Generate("approve", engineContext(t), engineChain(), 0.8, nil)
	require.NoError(t, err)

	stored, err := engine.Get(explanation.DecisionID)
	require.NoError(t, err)
	assert.Equal(t, explanation.DecisionID, stored.DecisionID)
	assert.Equal(t, "approve", stored.Decision)
	assert.Equal(t, 1, engine.Store().Len())
}

func TestEngine_GenerateRejectsInvalid(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.Generate("approve", engineContext(t), engineChain(), 1.5, nil)
	require.Error(t, err)
	assert.True(t, model.IsInvalidConfidenceError(err))
	assert.Equal(t, 0, engine.Store().Len(), "rejected explanations are never stored")
}

func TestEngine_HistoryBounds(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Hour)
		return now
	}
	engine := NewEngine(nil, WithEngineClock(clock))

	for i := 0; i < 3; i++ {
		_, err := engine.Generate("approve", engineContext(t), engineChain(), 0.5, nil)
		require.NoError(t, err)
	}

	all := engine.History(time.Time{}, time.Time{})
	require.Len(t, all, 3)

	bounded := engine.History(all[1].Timestamp, all[1].Timestamp)
	require.Len(t, bounded, 1)
	assert.Equal(t, all[1].DecisionID, bounded[0].DecisionID)
}

func TestEngine_HistoricalReport(t *testing.T) {
	cfg := config.Default()
	cfg.TrendWindowHours = 1
	engine := NewEngine(cfg)

	for i := 0; i < 5; i++ {
		_, err := engine.Generate("approve", engineContext(t), engineChain(), 0.6, map[string]interface{}{"outcome": "success"})
		require.NoError(t, err)
	}

	report, err := engine.HistoricalReport(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalDecisions)
	require.NotNil(t, report.MeanConfidence)
	assert.InDelta(t, 0.6, *report.MeanConfidence, 1e-9)
	require.Len(t, report.Outcomes.Groups, 1)
	assert.Equal(t, 5, report.Outcomes.Groups[0].Successes)
}

func TestEngine_WatchConfigFeedsScorer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lucid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("category_weights:\n  risk: 5.0\n"), 0o600))

	engine := NewEngine(nil)
	ctx, err := model.NewContext([]model.Factor{
		{Name: "a", Category: "risk", Value: 1},
		{Name: "b", Category: "demographic", Value: 2},
	})
	require.NoError(t, err)

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- engine.WatchConfig(watchCtx, path) }()

	scores := func() map[string]float64 {
		e, err := engine.Builder().Build("d", ctx, nil, 0.5, nil)
		if err != nil {
			return nil
		}
		return e.ContextInfluence
	}

	require.Eventually(t, func() bool {
		s := scores()
		return s["a"] == 1.0 && s["b"] == 0.0
	}, 5*time.Second, 20*time.Millisecond, "weights from the initial load apply")

	require.NoError(t, os.WriteFile(path, []byte("category_weights:\n  demographic: 5.0\n"), 0o600))

	require.Eventually(t, func() bool {
		s := scores()
		return s["b"] == 1.0 && s["a"] == 0.0
	}, 5*time.Second, 20*time.Millisecond, "weights from the reload apply")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestEngine_WatchConfigMissingFile(t *testing.T) {
	engine := NewEngine(nil)
	err := engine.WatchConfig(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEngine_SetCategoryWeights(t *testing.T) {
	engine := NewEngine(nil)

	explanation, err := engine.Builder().Build("approve", engineContext(t), engineChain(), 0.5, nil)
	require.NoError(t, err)
	// credit_score is cited as evidence, region is not.
	assert.Equal(t, 1.0, explanation.ContextInfluence["credit_score"])
	assert.Equal(t, 0.0, explanation.ContextInfluence["region"])

	// A large enough prior on the uncited factor's category inverts the
	// ranking for subsequent explanations.
	engine.SetCategoryWeights(map[string]float64{"general": 10.0})

	reweighted, err := engine.Builder().Build("approve", engineContext(t), engineChain(), 0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, reweighted.ContextInfluence["region"])
	assert.Equal(t, 0.0, reweighted.ContextInfluence["credit_score"])
}
