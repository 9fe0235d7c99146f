package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeld/lucid/internal/model"
)

func outcomeExpl(t *testing.T, id, decision string, ts time.Time, metadata map[string]interface{}) *model.Explanation {
	t.Helper()
	e := expl(t, id, ts, 0.5, nil)
	e.Decision = decision
	e.Metadata = metadata
	return e
}

func TestAnalyzeOutcomes_GroupsAndRates(t *testing.T) {
	history := []*model.Explanation{
		outcomeExpl(t, "a", "approve", testBase, map[string]interface{}{"outcome": "success"}),
		outcomeExpl(t, "b", "approve", testBase.Add(time.Hour), map[string]interface{}{"outcome": "failure"}),
		outcomeExpl(t, "c", "approve", testBase.Add(2*time.Hour), map[string]interface{}{"outcome": "success"}),
		outcomeExpl(t, "d", "reject", testBase.Add(3*time.Hour), map[string]interface{}{"outcome": "unknown"}),
	}

	report := AnalyzeOutcomes(history)

	assert.Equal(t, 0, report.Excluded)
	require.Len(t, report.Groups, 2)

	approve := report.Groups[0]
	assert.Equal(t, "approve", approve.Decision, "groups ordered by decision value")
	assert.Equal(t, 3, approve.Total)
	assert.Equal(t, 2, approve.Successes)
	assert.Equal(t, 1, approve.Failures)
	require.NotNil(t, approve.SuccessRate)
	assert.InDelta(t, 2.0/3.0, *approve.SuccessRate, 1e-9)

	reject := report.Groups[1]
	assert.Equal(t, 1, reject.Unknown)
	assert.Nil(t, reject.SuccessRate, "all-unknown group has no success rate")
}

func TestAnalyzeOutcomes_ExclusionsAreCounted(t *testing.T) {
	history := []*model.Explanation{
		outcomeExpl(t, "a", "approve", testBase, map[string]interface{}{"outcome": "success"}),
		outcomeExpl(t, "b", "approve", testBase.Add(time.Hour), nil),
		outcomeExpl(t, "c", "approve", testBase.Add(2*time.Hour), map[string]interface{}{"other": "x"}),
		outcomeExpl(t, "d", "approve", testBase.Add(3*time.Hour), map[string]interface{}{"outcome": "maybe"}),
		outcomeExpl(t, "e", "approve", testBase.Add(4*time.Hour), map[string]interface{}{"outcome": 42}),
	}

	report := AnalyzeOutcomes(history)

	assert.Equal(t, 4, report.Excluded, "missing keys and unrecognized values are excluded, never dropped silently")
	require.Len(t, report.Groups, 1)
	assert.Equal(t, 1, report.Groups[0].Total)
}

func TestAnalyzeOutcomes_Empty(t *testing.T) {
	report := AnalyzeOutcomes(nil)
	assert.Empty(t, report.Groups)
	assert.Equal(t, 0, report.Excluded)
}
