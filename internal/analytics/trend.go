package analytics

import (
	"fmt"
	"time"

	"github.com/mfeld/lucid/internal/model"
)

// TrendBucket is one fixed-size time window of the confidence trend.
type TrendBucket struct {
	// Start is the inclusive window start.
	Start time.Time `json:"start"`
	// End is the exclusive window end.
	End time.Time `json:"end"`
	// Count is the number of decisions in the window.
	Count int `json:"count"`
	// MeanConfidence is the mean confidence of the window's decisions.
	// Nil for empty windows: absence of data, not a zero confidence.
	MeanConfidence *float64 `json:"mean_confidence,omitempty"`
}

// TrendOverTime buckets explanations into fixed-size, non-overlapping
// windows starting at the earliest timestamp and reports count and mean
// confidence per window. Empty windows between populated ones are
// included with a zero count and nil mean. An empty input yields an
// empty slice.
func TrendOverTime(explanations []*model.Explanation, window time.Duration) ([]TrendBucket, error) {
	if window <= 0 {
		return nil, fmt.Errorf("trend window must be positive, got %v", window)
	}
	if len(explanations) == 0 {
		return []TrendBucket{}, nil
	}

	ordered := sortedByTime(explanations)
	origin := ordered[0].Timestamp
	last := ordered[len(ordered)-1].Timestamp

	bucketCount := int(last.Sub(origin)/window) + 1
	sums := make([]float64, bucketCount)
	counts := make([]int, bucketCount)

	for _, e := range ordered {
		idx := int(e.Timestamp.Sub(origin) / window)
		sums[idx] += e.Confidence
		counts[idx]++
	}

	buckets := make([]TrendBucket, bucketCount)
	for i := 0; i < bucketCount; i++ {
		bucket := TrendBucket{
			Start: origin.Add(time.Duration(i) * window),
			End:   origin.Add(time.Duration(i+1) * window),
			Count: counts[i],
		}
		if counts[i] > 0 {
			mean := sums[i] / float64(counts[i])
			bucket.MeanConfidence = &mean
		}
		buckets[i] = bucket
	}
	return buckets, nil
}
