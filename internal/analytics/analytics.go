// Package analytics computes derived statistics over a history of
// Explanation records: confidence trends, category and confidence
// distributions, factor correlation, importance trends, outcome rates,
// and pairwise comparison.
//
// Every function is pure: it operates on the caller-supplied snapshot,
// never mutates it, and never re-reads a store mid-computation. "No
// data" conditions that are legitimately possible (empty time windows,
// too few correlation samples) are represented as nil values or omitted
// entries, never as a numeric zero.
package analytics

import (
	"sort"

	"github.com/mfeld/lucid/internal/model"
)

// sortedByTime returns a copy of the input ordered by timestamp
// ascending. Store queries already deliver this order; sorting a copy
// keeps the functions total over arbitrary input without mutating it.
func sortedByTime(explanations []*model.Explanation) []*model.Explanation {
	out := make([]*model.Explanation, len(explanations))
	copy(out, explanations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// meanConfidence returns the mean confidence, or nil for an empty input.
func meanConfidence(explanations []*model.Explanation) *float64 {
	if len(explanations) == 0 {
		return nil
	}
	sum := 0.0
	for _, e := range explanations {
		sum += e.Confidence
	}
	mean := sum / float64(len(explanations))
	return &mean
}
