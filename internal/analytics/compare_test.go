package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_SharedAndChangedFactors(t *testing.T) {
	a := expl(t, "a", testBase, 0.6, map[string]float64{"credit_score": 1.0, "region": 0.2})
	b := expl(t, "b", testBase.Add(2*time.Hour), 0.9, map[string]float64{"credit_score": 0.5, "income": 1.0})

	cmp, err := Compare(a, b)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, cmp.ConfidenceDelta, 1e-9)
	assert.Equal(t, 2*time.Hour, cmp.TimeDelta)

	require.Len(t, cmp.Influence, 3, "deltas cover the union of factors, sorted by name")
	assert.Equal(t, "credit_score", cmp.Influence[0].Factor)
	assert.InDelta(t, -0.5, cmp.Influence[0].Delta, 1e-9)
	assert.True(t, cmp.Influence[0].InA)
	assert.True(t, cmp.Influence[0].InB)

	income := cmp.Influence[1]
	assert.Equal(t, "income", income.Factor)
	assert.False(t, income.InA)
	assert.True(t, income.InB)
	assert.InDelta(t, 1.0, income.Delta, 1e-9)
}

func TestCompare_DisjointFactors(t *testing.T) {
	a := expl(t, "a", testBase, 0.4, map[string]float64{"old_factor": 0.7})
	b := expl(t, "b", testBase.Add(time.Hour), 0.8, map[string]float64{"new_factor": 0.9})

	cmp, err := Compare(a, b)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, cmp.ConfidenceDelta, 1e-9)

	require.Len(t, cmp.Influence, 2)

	newFactor := cmp.Influence[0]
	assert.Equal(t, "new_factor", newFactor.Factor)
	assert.InDelta(t, 0.9, newFactor.Delta, 1e-9, "added factor's delta is its own influence")
	assert.False(t, newFactor.InA)

	oldFactor := cmp.Influence[1]
	assert.Equal(t, "old_factor", oldFactor.Factor)
	assert.InDelta(t, -0.7, oldFactor.Delta, 1e-9, "removed factor's delta is its influence negated")
	assert.False(t, oldFactor.InB)
}

func TestCompare_CategoryDeltas(t *testing.T) {
	a := explWithCategories(t, "a", testBase, 0.5,
		map[string]float64{"f1": 1, "f2": 1},
		map[string]string{"f1": "financial", "f2": "financial"})
	b := explWithCategories(t, "b", testBase.Add(time.Hour), 0.5,
		map[string]float64{"f1": 1, "f3": 1},
		map[string]string{"f1": "financial", "f3": "risk"})

	cmp, err := Compare(a, b)
	require.NoError(t, err)

	require.Len(t, cmp.Categories, 2)
	assert.Equal(t, CategoryDelta{Category: "financial", A: 2, B: 1, Delta: -1}, cmp.Categories[0])
	assert.Equal(t, CategoryDelta{Category: "risk", A: 0, B: 1, Delta: 1}, cmp.Categories[1])
}

func TestCompare_NilExplanation(t *testing.T) {
	a := expl(t, "a", testBase, 0.5, nil)

	_, err := Compare(a, nil)
	assert.Error(t, err)

	_, err = Compare(nil, a)
	assert.Error(t, err)
}

func TestCompare_Identical(t *testing.T) {
	a := expl(t, "a", testBase, 0.5, map[string]float64{"x": 0.5})

	cmp, err := Compare(a, a)
	require.NoError(t, err)

	assert.Zero(t, cmp.ConfidenceDelta)
	assert.Zero(t, cmp.TimeDelta)
	require.Len(t, cmp.Influence, 1)
	assert.Zero(t, cmp.Influence[0].Delta)
}
