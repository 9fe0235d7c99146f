package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeld/lucid/internal/model"
)

func TestBuildReport_AssemblesAllSections(t *testing.T) {
	history := []*model.Explanation{
		expl(t, "a", testBase, 0.6, map[string]float64{"credit_score": 1.0, "region": 0.2}),
		expl(t, "b", testBase.Add(time.Hour), 0.8, map[string]float64{"credit_score": 0.5, "region": 0.9}),
		expl(t, "c", testBase.Add(2*time.Hour), 0.7, map[string]float64{"credit_score": 0.3}),
	}
	history[0].Metadata = map[string]interface{}{"outcome": "success"}
	history[1].Metadata = map[string]interface{}{"outcome": "failure"}

	report, err := BuildReport(context.Background(), history, ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalDecisions)
	require.NotNil(t, report.MeanConfidence)
	assert.InDelta(t, 0.7, *report.MeanConfidence, 1e-9)

	assert.NotEmpty(t, report.Trend)
	assert.NotEmpty(t, report.Categories)
	assert.Len(t, report.Confidence.Histogram, DefaultHistogramBuckets)
	assert.NotEmpty(t, report.CommonFactors)
	assert.NotEmpty(t, report.ImportanceTrend)
	assert.Equal(t, 1, report.Outcomes.Excluded)
}

func TestBuildReport_HonorsOptions(t *testing.T) {
	history := []*model.Explanation{
		expl(t, "a", testBase, 0.3, map[string]float64{"x": 1.0, "y": 0.5, "z": 0.1}),
		expl(t, "b", testBase.Add(48*time.Hour), 0.9, map[string]float64{"x": 0.8, "y": 0.4, "z": 0.2}),
	}

	report, err := BuildReport(context.Background(), history, ReportOptions{
		TrendWindow:      24 * time.Hour,
		TopFactors:       1,
		HistogramBuckets: 4,
	})
	require.NoError(t, err)

	assert.Len(t, report.Trend, 3, "48-hour span with 24-hour windows")
	assert.Len(t, report.ImportanceTrend, 1)
	assert.Len(t, report.Confidence.Histogram, 4)
}

func TestBuildReport_EmptyHistory(t *testing.T) {
	report, err := BuildReport(context.Background(), nil, ReportOptions{})
	require.NoError(t, err)

	assert.Zero(t, report.TotalDecisions)
	assert.Nil(t, report.MeanConfidence)
	assert.Empty(t, report.Trend)
	assert.Empty(t, report.CommonFactors)
}
