package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/mfeld/lucid/internal/model"
)

// TrendPoint is one influence observation in a factor's time series.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
}

// FactorTrend is the influence time series of one factor.
type FactorTrend struct {
	Factor        string       `json:"factor"`
	MeanInfluence float64      `json:"mean_influence"`
	Series        []TrendPoint `json:"series"`
}

// FactorImportanceTrend selects the topN factors by mean influence score
// across the whole history and returns each factor's influence series
// ordered by explanation timestamp. Selection ties break by factor name
// ascending; results are ordered by mean influence descending with the
// same tie break.
func FactorImportanceTrend(explanations []*model.Explanation, topN int) ([]FactorTrend, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("top_n must be positive, got %d", topN)
	}

	ordered := sortedByTime(explanations)
	trends := make(map[string]*FactorTrend)
	for _, e := range ordered {
		for name, score := range e.ContextInfluence {
			trend, ok := trends[name]
			if !ok {
				trend = &FactorTrend{Factor: name}
				trends[name] = trend
			}
			trend.Series = append(trend.Series, TrendPoint{
				Timestamp: e.Timestamp,
				Score:     score,
			})
		}
	}

	out := make([]FactorTrend, 0, len(trends))
	for _, trend := range trends {
		sum := 0.0
		for _, point := range trend.Series {
			sum += point.Score
		}
		trend.MeanInfluence = sum / float64(len(trend.Series))
		out = append(out, *trend)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanInfluence != out[j].MeanInfluence {
			return out[i].MeanInfluence > out[j].MeanInfluence
		}
		return out[i].Factor < out[j].Factor
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// CommonFactor reports how often a factor recurs across a history and
// how influential it was on average.
type CommonFactor struct {
	Factor        string  `json:"factor"`
	Occurrences   int     `json:"occurrences"`
	Frequency     float64 `json:"frequency"`
	MeanInfluence float64 `json:"mean_influence"`
}

// CommonFactors identifies factors appearing in more than one
// explanation. Frequency is occurrences over the history length.
// Results are ordered by occurrences descending, ties by name ascending.
func CommonFactors(explanations []*model.Explanation) []CommonFactor {
	if len(explanations) == 0 {
		return nil
	}

	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, e := range explanations {
		for name, score := range e.ContextInfluence {
			counts[name]++
			sums[name] += score
		}
	}

	var out []CommonFactor
	total := float64(len(explanations))
	for name, count := range counts {
		if count < 2 {
			continue
		}
		out = append(out, CommonFactor{
			Factor:        name,
			Occurrences:   count,
			Frequency:     float64(count) / total,
			MeanInfluence: sums[name] / float64(count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Factor < out[j].Factor
	})
	return out
}
