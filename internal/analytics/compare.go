package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/mfeld/lucid/internal/model"
)

// InfluenceDelta is the influence change of one factor between two
// explanations. A factor absent from one side contributes 0 influence
// on that side.
type InfluenceDelta struct {
	Factor string  `json:"factor"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Delta  float64 `json:"delta"`
	InA    bool    `json:"in_a"`
	InB    bool    `json:"in_b"`
}

// CategoryDelta is the category occurrence change between two contexts.
type CategoryDelta struct {
	Category string `json:"category"`
	A        int    `json:"a"`
	B        int    `json:"b"`
	Delta    int    `json:"delta"`
}

// Comparison is the pairwise difference between two explanations.
// Deltas are b minus a throughout.
type Comparison struct {
	ConfidenceDelta float64          `json:"confidence_delta"`
	TimeDelta       time.Duration    `json:"time_delta"`
	Influence       []InfluenceDelta `json:"influence"`
	Categories      []CategoryDelta  `json:"categories"`
}

// Compare diffs two explanations: per-factor influence deltas over the
// union of their factors, the confidence delta, and the category
// distribution delta. The explanations need not share any factors.
func Compare(a, b *model.Explanation) (*Comparison, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("both explanations are required for comparison")
	}

	factorSet := make(map[string]struct{}, len(a.ContextInfluence)+len(b.ContextInfluence))
	for name := range a.ContextInfluence {
		factorSet[name] = struct{}{}
	}
	for name := range b.ContextInfluence {
		factorSet[name] = struct{}{}
	}
	names := make([]string, 0, len(factorSet))
	for name := range factorSet {
		names = append(names, name)
	}
	sort.Strings(names)

	influence := make([]InfluenceDelta, 0, len(names))
	for _, name := range names {
		scoreA, inA := a.ContextInfluence[name]
		scoreB, inB := b.ContextInfluence[name]
		influence = append(influence, InfluenceDelta{
			Factor: name,
			A:      scoreA,
			B:      scoreB,
			Delta:  scoreB - scoreA,
			InA:    inA,
			InB:    inB,
		})
	}

	categories := categoryDeltas(a.Context, b.Context)

	return &Comparison{
		ConfidenceDelta: b.Confidence - a.Confidence,
		TimeDelta:       b.Timestamp.Sub(a.Timestamp),
		Influence:       influence,
		Categories:      categories,
	}, nil
}

func categoryDeltas(a, b *model.Context) []CategoryDelta {
	countsA := make(map[string]int)
	for _, factor := range a.Factors() {
		countsA[factor.Category]++
	}
	countsB := make(map[string]int)
	for _, factor := range b.Factors() {
		countsB[factor.Category]++
	}

	categorySet := make(map[string]struct{}, len(countsA)+len(countsB))
	for category := range countsA {
		categorySet[category] = struct{}{}
	}
	for category := range countsB {
		categorySet[category] = struct{}{}
	}
	names := make([]string, 0, len(categorySet))
	for category := range categorySet {
		names = append(names, category)
	}
	sort.Strings(names)

	out := make([]CategoryDelta, 0, len(names))
	for _, category := range names {
		out = append(out, CategoryDelta{
			Category: category,
			A:        countsA[category],
			B:        countsB[category],
			Delta:    countsB[category] - countsA[category],
		})
	}
	return out
}
