package explain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mfeld/lucid/internal/model"
)

// shortSummaryFactors caps how many factors the one-line summary names.
const shortSummaryFactors = 3

// rankedFactor pairs a factor name with its influence for ordering.
type rankedFactor struct {
	name  string
	score float64
}

// rankFactors orders an influence mapping by score descending, ties by
// name ascending.
func rankFactors(influence map[string]float64) []rankedFactor {
	ranked := make([]rankedFactor, 0, len(influence))
	for name, score := range influence {
		ranked = append(ranked, rankedFactor{name: name, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})
	return ranked
}

// ShortSummary renders a one-line summary of an explanation: confidence,
// the most influential factors, and the chain length.
func ShortSummary(e *model.Explanation) string {
	ranked := rankFactors(e.ContextInfluence)
	if len(ranked) > shortSummaryFactors {
		ranked = ranked[:shortSummaryFactors]
	}
	parts := make([]string, len(ranked))
	for i, f := range ranked {
		parts[i] = fmt.Sprintf("%s (%.2f)", f.name, f.score)
	}

	factors := "none"
	if len(parts) > 0 {
		factors = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Decision made with %.1f%% confidence. Key factors: %s. Based on %d reasoning steps.",
		e.Confidence*100, factors, len(e.ReasoningChain))
}

// TextSummary renders a multi-line, human-readable view of an
// explanation: reasoning steps in order, factors ranked by influence,
// confidence, and timestamp.
func TextSummary(e *model.Explanation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Decision Explanation (ID: %s)\n", e.DecisionID)
	fmt.Fprintf(&b, "Decision: %s\n", e.Decision)
	fmt.Fprintf(&b, "Timestamp: %s\n", e.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "Confidence: %.1f%%\n", e.Confidence*100)

	b.WriteString("\nReasoning Steps:\n")
	for _, step := range e.ReasoningChain {
		fmt.Fprintf(&b, "%d. %s\n", step.Index+1, step.Description)
		for _, evidence := range step.SupportingEvidence {
			fmt.Fprintf(&b, "   - %s\n", evidence)
		}
	}

	b.WriteString("\nContext Factors:\n")
	for _, f := range rankFactors(e.ContextInfluence) {
		factor, _ := e.Context.Factor(f.name)
		fmt.Fprintf(&b, "- %s (%s): %.2f\n", f.name, factor.Category, f.score)
	}

	return b.String()
}

// jsonDocument is the deterministic JSON rendering of one explanation,
// structured for consumption by rendering layers.
type jsonDocument struct {
	Decision struct {
		ID         string  `json:"id"`
		Value      string  `json:"value"`
		Timestamp  string  `json:"timestamp"`
		Confidence float64 `json:"confidence"`
	} `json:"decision"`
	Reasoning []model.ReasoningStep  `json:"reasoning"`
	Factors   []jsonFactor           `json:"factors"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type jsonFactor struct {
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Value     interface{} `json:"value"`
	Influence float64     `json:"influence"`
}

// RenderJSON renders an explanation as an indented, deterministic JSON
// document: factors are ordered by influence, maps by key.
func RenderJSON(e *model.Explanation) ([]byte, error) {
	var doc jsonDocument
	doc.Decision.ID = e.DecisionID
	doc.Decision.Value = e.Decision
	doc.Decision.Timestamp = e.Timestamp.Format("2006-01-02T15:04:05.000000000Z07:00")
	doc.Decision.Confidence = e.Confidence
	doc.Reasoning = e.ReasoningChain
	doc.Metadata = e.Metadata

	for _, f := range rankFactors(e.ContextInfluence) {
		factor, _ := e.Context.Factor(f.name)
		doc.Factors = append(doc.Factors, jsonFactor{
			Name:      f.name,
			Category:  factor.Category,
			Value:     factor.Value,
			Influence: f.score,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}
