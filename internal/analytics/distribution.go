package analytics

import (
	"sort"
	"time"

	"github.com/mfeld/lucid/internal/model"
)

// DefaultHistogramBuckets is the default confidence histogram resolution:
// ten equal-width buckets over [0, 1].
const DefaultHistogramBuckets = 10

// CategoryCount is the occurrence count of one factor category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryDistribution counts factor category occurrences across all
// contexts in the history. Results are ordered by count descending;
// ties break by category name ascending.
func CategoryDistribution(explanations []*model.Explanation) []CategoryCount {
	counts := make(map[string]int)
	for _, e := range explanations {
		for _, factor := range e.Context.Factors() {
			counts[factor.Category]++
		}
	}

	out := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// HistogramBucket is one equal-width confidence histogram bucket.
// Low is inclusive; High is exclusive except for the top bucket, which
// is closed so a confidence of exactly 1.0 is counted.
type HistogramBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ConfidenceSummary is the confidence distribution of a history.
type ConfidenceSummary struct {
	// Values holds every confidence, ordered by explanation timestamp.
	Values []float64 `json:"values"`
	// Mean is the mean confidence, nil for an empty history.
	Mean *float64 `json:"mean,omitempty"`
	// Histogram buckets the values over [0, 1]. Bucket counts sum to
	// len(Values).
	Histogram []HistogramBucket `json:"histogram"`
}

// ConfidenceDistribution returns the ordered confidence values, their
// mean, and an equal-width histogram over [0, 1]. A non-positive bucket
// count selects DefaultHistogramBuckets.
func ConfidenceDistribution(explanations []*model.Explanation, buckets int) ConfidenceSummary {
	if buckets <= 0 {
		buckets = DefaultHistogramBuckets
	}

	ordered := sortedByTime(explanations)
	values := make([]float64, len(ordered))
	for i, e := range ordered {
		values[i] = e.Confidence
	}

	histogram := make([]HistogramBucket, buckets)
	width := 1.0 / float64(buckets)
	for i := range histogram {
		histogram[i] = HistogramBucket{
			Low:  float64(i) * width,
			High: float64(i+1) * width,
		}
	}
	for _, v := range values {
		// Confidence is validated to [0, 1] at build and import time;
		// clamp so an out-of-range value can never index out of bounds.
		idx := int(v * float64(buckets))
		if idx < 0 {
			idx = 0
		}
		if idx >= buckets {
			idx = buckets - 1
		}
		histogram[idx].Count++
	}

	return ConfidenceSummary{
		Values:    values,
		Mean:      meanConfidence(ordered),
		Histogram: histogram,
	}
}

// FactorValuePoint is one observation of a factor: its raw value, the
// influence it was assigned, and the decision confidence.
type FactorValuePoint struct {
	Timestamp  time.Time   `json:"timestamp"`
	Value      interface{} `json:"value"`
	Influence  float64     `json:"influence"`
	Confidence float64     `json:"confidence"`
}

// FactorValueDistribution returns, ordered by timestamp, one point per
// explanation whose context contains the named factor. Returns
// FactorNotFoundError if no explanation contains it.
func FactorValueDistribution(explanations []*model.Explanation, factorName string) ([]FactorValuePoint, error) {
	var points []FactorValuePoint
	for _, e := range sortedByTime(explanations) {
		factor, ok := e.Context.Factor(factorName)
		if !ok {
			continue
		}
		points = append(points, FactorValuePoint{
			Timestamp:  e.Timestamp,
			Value:      factor.Value,
			Influence:  e.ContextInfluence[factorName],
			Confidence: e.Confidence,
		})
	}
	if len(points) == 0 {
		return nil, &model.FactorNotFoundError{Name: factorName}
	}
	return points, nil
}
