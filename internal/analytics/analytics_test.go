package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mfeld/lucid/internal/model"
)

var testBase = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

// expl builds a minimal explanation for analytics tests. Influence keys
// double as context factors in the "general" category unless a
// categories map overrides them.
func expl(t *testing.T, id string, ts time.Time, confidence float64, influence map[string]float64) *model.Explanation {
	t.Helper()
	return explWithCategories(t, id, ts, confidence, influence, nil)
}

func explWithCategories(t *testing.T, id string, ts time.Time, confidence float64, influence map[string]float64, categories map[string]string) *model.Explanation {
	t.Helper()

	factors := make([]model.Factor, 0, len(influence))
	for name := range influence {
		factors = append(factors, model.Factor{
			Name:     name,
			Category: categories[name],
			Value:    1.0,
		})
	}
	ctx, err := model.NewContext(factors)
	require.NoError(t, err)

	scores := make(map[string]float64, len(influence))
	for name, score := range influence {
		scores[name] = score
	}

	return &model.Explanation{
		DecisionID:       id,
		Decision:         "d",
		Context:          ctx,
		Confidence:       confidence,
		ContextInfluence: scores,
		Timestamp:        ts,
	}
}
