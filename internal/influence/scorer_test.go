package influence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeld/lucid/internal/model"
)

func mustContext(t *testing.T, factors []model.Factor) *model.Context {
	t.Helper()
	ctx, err := model.NewContext(factors)
	require.NoError(t, err)
	return ctx
}

func TestScore_EvidencedFactorDominates(t *testing.T) {
	scorer := NewScorer(Config{})
	ctx := mustContext(t, []model.Factor{
		{Name: "temperature", Value: 38.5},
		{Name: "humidity", Value: 0.9},
	})
	chain := []model.ReasoningStep{
		{Index: 0, Description: "high temp noted", SupportingEvidence: []string{"temperature"}},
	}

	scores := scorer.Score(ctx, chain)

	require.Len(t, scores, 2)
	assert.Equal(t, 1.0, scores["temperature"])
	assert.Equal(t, 0.0, scores["humidity"])
}

func TestScore_NormalizationBounds(t *testing.T) {
	scorer := NewScorer(Config{})
	ctx := mustContext(t, []model.Factor{
		{Name: "a", Value: 1},
		{Name: "b", Value: 2},
		{Name: "c", Value: 3},
	})
	chain := []model.ReasoningStep{
		{Index: 0, Description: "s0", SupportingEvidence: []string{"a", "a", "b"}},
		{Index: 1, Description: "s1", SupportingEvidence: []string{"a"}},
	}

	scores := scorer.Score(ctx, chain)

	// a: 3 occurrences, b: 1, c: 0. Min-max over [1, 4].
	assert.Equal(t, 1.0, scores["a"])
	assert.InDelta(t, 1.0/3.0, scores["b"], 1e-9)
	assert.Equal(t, 0.0, scores["c"])

	maxScore := 0.0
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		if s > maxScore {
			maxScore = s
		}
	}
	assert.Equal(t, 1.0, maxScore, "most influential factor scores exactly 1.0")
}

func TestScore_TieMeansAllOnes(t *testing.T) {
	scorer := NewScorer(Config{})

	tests := []struct {
		name    string
		factors []model.Factor
	}{
		{
			name:    "single factor",
			factors: []model.Factor{{Name: "only", Value: 1}},
		},
		{
			name: "no evidence at all",
			factors: []model.Factor{
				{Name: "a", Value: 1},
				{Name: "b", Value: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := scorer.Score(mustContext(t, tt.factors), nil)
			require.Len(t, scores, len(tt.factors))
			for name, s := range scores {
				assert.Equal(t, 1.0, s, "factor %s", name)
			}
		})
	}
}

func TestScore_EmptyContext(t *testing.T) {
	scorer := NewScorer(Config{})
	scores := scorer.Score(model.EmptyContext(), []model.ReasoningStep{
		{Index: 0, Description: "step", SupportingEvidence: []string{"anything"}},
	})
	assert.Empty(t, scores)
	assert.NotNil(t, scores)
}

func TestScore_UnknownEvidenceIgnored(t *testing.T) {
	scorer := NewScorer(Config{})
	ctx := mustContext(t, []model.Factor{
		{Name: "a", Value: 1},
		{Name: "b", Value: 2},
	})
	chain := []model.ReasoningStep{
		{Index: 0, Description: "cites external knowledge", SupportingEvidence: []string{"wikipedia", "b"}},
	}

	scores := scorer.Score(ctx, chain)

	require.Len(t, scores, 2, "external references never add influence entries")
	assert.Equal(t, 1.0, scores["b"])
	assert.Equal(t, 0.0, scores["a"])
}

func TestScore_ExactNameMatchOnly(t *testing.T) {
	scorer := NewScorer(Config{})
	ctx := mustContext(t, []model.Factor{
		{Name: "temp", Value: 1},
		{Name: "pressure", Value: 2},
	})
	chain := []model.ReasoningStep{
		{Index: 0, Description: "s", SupportingEvidence: []string{"temperature", "Temp", "pressure"}},
	}

	scores := scorer.Score(ctx, chain)

	assert.Equal(t, 0.0, scores["temp"], "partial and case-insensitive matches do not count")
	assert.Equal(t, 1.0, scores["pressure"])
}

func TestScore_WeightHintOverridesHeuristic(t *testing.T) {
	hint := 10.0
	scorer := NewScorer(Config{})
	ctx := mustContext(t, []model.Factor{
		{Name: "hinted", Value: 1, WeightHint: &hint},
		{Name: "evidenced", Value: 2},
	})
	chain := []model.ReasoningStep{
		{Index: 0, Description: "s", SupportingEvidence: []string{"evidenced", "evidenced"}},
	}

	scores := scorer.Score(ctx, chain)

	// hinted raw = 10, evidenced raw = 1 + 2 = 3.
	assert.Equal(t, 1.0, scores["hinted"])
	assert.Equal(t, 0.0, scores["evidenced"])
}

func TestScore_CategoryPriors(t *testing.T) {
	scorer := NewScorer(Config{
		CategoryWeights: map[string]float64{"risk": 3.0},
	})
	ctx := mustContext(t, []model.Factor{
		{Name: "delinquent", Category: "risk", Value: true},
		{Name: "region", Category: "demographic", Value: "north"},
	})

	scores := scorer.Score(ctx, nil)

	// delinquent raw = 1*3, region raw = 1*1.
	assert.Equal(t, 1.0, scores["delinquent"])
	assert.Equal(t, 0.0, scores["region"])
}

func TestSetCategoryWeights_HotReload(t *testing.T) {
	scorer := NewScorer(Config{})
	ctx := mustContext(t, []model.Factor{
		{Name: "a", Category: "risk", Value: 1},
		{Name: "b", Category: "demographic", Value: 2},
	})

	before := scorer.Score(ctx, nil)
	assert.Equal(t, 1.0, before["a"])
	assert.Equal(t, 1.0, before["b"], "uniform priors tie")

	scorer.SetCategoryWeights(map[string]float64{"risk": 5.0})

	after := scorer.Score(ctx, nil)
	assert.Equal(t, 1.0, after["a"])
	assert.Equal(t, 0.0, after["b"])
}
