package analytics

import (
	"sort"

	"github.com/mfeld/lucid/internal/model"
)

// MetadataOutcomeKey is the metadata key outcome analysis reads.
const MetadataOutcomeKey = "outcome"

// Recognized outcome values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeUnknown = "unknown"
)

// OutcomeGroup aggregates the outcomes recorded for one decision value.
type OutcomeGroup struct {
	Decision  string `json:"decision"`
	Total     int    `json:"total"`
	Successes int    `json:"successes"`
	Failures  int    `json:"failures"`
	Unknown   int    `json:"unknown"`
	// SuccessRate is successes over graded outcomes (successes plus
	// failures). Nil when every outcome in the group is unknown.
	SuccessRate *float64 `json:"success_rate,omitempty"`
}

// OutcomeReport is the result of outcome analysis over a history.
type OutcomeReport struct {
	// Groups is ordered by decision value ascending.
	Groups []OutcomeGroup `json:"groups"`
	// Excluded counts explanations without a recognized outcome entry.
	// Reported explicitly: exclusions are accounted for, never silent.
	Excluded int `json:"excluded"`
}

// AnalyzeOutcomes groups explanations by decision value and reports
// success rates from the metadata outcome key. Explanations whose
// metadata lacks the key, or carries a value other than
// success/failure/unknown, are excluded and counted.
func AnalyzeOutcomes(explanations []*model.Explanation) OutcomeReport {
	groups := make(map[string]*OutcomeGroup)
	excluded := 0

	for _, e := range explanations {
		outcome, ok := e.Metadata[MetadataOutcomeKey].(string)
		if !ok {
			excluded++
			continue
		}
		if outcome != OutcomeSuccess && outcome != OutcomeFailure && outcome != OutcomeUnknown {
			excluded++
			continue
		}

		group, ok := groups[e.Decision]
		if !ok {
			group = &OutcomeGroup{Decision: e.Decision}
			groups[e.Decision] = group
		}
		group.Total++
		switch outcome {
		case OutcomeSuccess:
			group.Successes++
		case OutcomeFailure:
			group.Failures++
		case OutcomeUnknown:
			group.Unknown++
		}
	}

	out := make([]OutcomeGroup, 0, len(groups))
	for _, group := range groups {
		if graded := group.Successes + group.Failures; graded > 0 {
			rate := float64(group.Successes) / float64(graded)
			group.SuccessRate = &rate
		}
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Decision < out[j].Decision
	})

	return OutcomeReport{Groups: out, Excluded: excluded}
}
