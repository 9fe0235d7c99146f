package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/mfeld/lucid/internal/model"
	"golang.org/x/sync/errgroup"
)

// ReportOptions tunes report assembly. Zero values select the defaults.
type ReportOptions struct {
	// TrendWindow is the bucket size of the confidence trend.
	TrendWindow time.Duration
	// TopFactors is the top-N cutoff of the importance trend.
	TopFactors int
	// HistogramBuckets is the confidence histogram resolution.
	HistogramBuckets int
}

// Default report parameters.
const (
	DefaultTrendWindow = 24 * time.Hour
	DefaultTopFactors  = 5
)

// Report bundles the aggregate analytics of one history snapshot.
type Report struct {
	TotalDecisions  int                 `json:"total_decisions"`
	MeanConfidence  *float64            `json:"mean_confidence,omitempty"`
	Trend           []TrendBucket       `json:"trend"`
	Categories      []CategoryCount     `json:"categories"`
	Confidence      ConfidenceSummary   `json:"confidence"`
	CommonFactors   []CommonFactor      `json:"common_factors"`
	Correlations    []FactorCorrelation `json:"correlations"`
	ImportanceTrend []FactorTrend       `json:"importance_trend"`
	Outcomes        OutcomeReport       `json:"outcomes"`
}

// BuildReport runs the independent analytics over one snapshot and
// assembles the combined report. The computations are independent pure
// functions over immutable records, so they run concurrently; the
// snapshot is never re-read mid-computation.
func BuildReport(ctx context.Context, explanations []*model.Explanation, opts ReportOptions) (*Report, error) {
	if opts.TrendWindow <= 0 {
		opts.TrendWindow = DefaultTrendWindow
	}
	if opts.TopFactors <= 0 {
		opts.TopFactors = DefaultTopFactors
	}
	if opts.HistogramBuckets <= 0 {
		opts.HistogramBuckets = DefaultHistogramBuckets
	}

	report := &Report{
		TotalDecisions: len(explanations),
		MeanConfidence: meanConfidence(explanations),
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		trend, err := TrendOverTime(explanations, opts.TrendWindow)
		if err != nil {
			return fmt.Errorf("trend analysis failed: %w", err)
		}
		report.Trend = trend
		return nil
	})

	g.Go(func() error {
		report.Categories = CategoryDistribution(explanations)
		return nil
	})

	g.Go(func() error {
		report.Confidence = ConfidenceDistribution(explanations, opts.HistogramBuckets)
		return nil
	})

	g.Go(func() error {
		report.CommonFactors = CommonFactors(explanations)
		return nil
	})

	g.Go(func() error {
		report.Correlations = CorrelateFactors(explanations)
		return nil
	})

	g.Go(func() error {
		trend, err := FactorImportanceTrend(explanations, opts.TopFactors)
		if err != nil {
			return fmt.Errorf("importance trend failed: %w", err)
		}
		report.ImportanceTrend = trend
		return nil
	})

	g.Go(func() error {
		report.Outcomes = AnalyzeOutcomes(explanations)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
