package model

import (
	"time"
)

// ReasoningStep is one step in the chain of reasoning that led to a
// decision. Step order is chronological and preserved exactly as supplied.
type ReasoningStep struct {
	// Index is the position of the step, starting at 0 and contiguous.
	Index int `json:"index"`
	// Description is the free-form content of the step.
	Description string `json:"description"`
	// SupportingEvidence lists references backing the step. Entries that
	// match a context factor name feed the influence heuristic; other
	// entries may reference external knowledge and are kept verbatim.
	SupportingEvidence []string `json:"supporting_evidence,omitempty"`
}

// Explanation is the immutable record capturing a decision, the context
// snapshot that produced it, the reasoning chain, the confidence, and the
// derived per-factor influence attribution.
//
// An Explanation is created exclusively by the Builder and must not be
// modified afterwards. The context and chain are snapshots: later mutation
// of the caller's inputs does not affect the record.
type Explanation struct {
	// DecisionID uniquely identifies the record for the engine lifetime.
	DecisionID string `json:"decision_id"`
	// Decision is the agent's output, treated as opaque.
	Decision string `json:"decision"`
	// Context is the factor snapshot at decision time.
	Context *Context `json:"context"`
	// ReasoningChain is the ordered reasoning steps, preserved verbatim.
	ReasoningChain []ReasoningStep `json:"reasoning_chain"`
	// Confidence is the decision confidence in [0.0, 1.0].
	Confidence float64 `json:"confidence"`
	// ContextInfluence maps each factor name in Context to a normalized
	// influence score in [0.0, 1.0]. Exactly one entry per factor.
	ContextInfluence map[string]float64 `json:"context_influence"`
	// Metadata carries caller-supplied scalar annotations. Not interpreted
	// by the engine except for the analytics outcome key.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	// Timestamp is the construction time, non-decreasing across
	// Explanations built by the same builder.
	Timestamp time.Time `json:"timestamp"`
}

// ValidateChain checks that step indices are contiguous starting at 0.
func ValidateChain(chain []ReasoningStep) error {
	for i, step := range chain {
		if step.Index != i {
			return NewInvalidReasoningChainError(
				"step at position %d has index %d, want %d", i, step.Index, i)
		}
	}
	return nil
}

// Validate checks the record invariants the builder guarantees at
// construction time: confidence bounds, chain contiguity, scalar
// metadata, and an influence entry per context factor. Records arriving
// from outside the builder (a JSONL import, a hand-edited history) are
// re-validated through this before they reach the analytics.
func (e *Explanation) Validate() error {
	if e.Confidence < 0.0 || e.Confidence > 1.0 {
		return &InvalidConfidenceError{Confidence: e.Confidence}
	}
	if err := ValidateChain(e.ReasoningChain); err != nil {
		return err
	}
	if err := ValidateMetadata(e.Metadata); err != nil {
		return err
	}
	if len(e.ContextInfluence) != e.Context.Len() {
		return NewInvalidFactorError("", "influence has %d entries for %d context factors",
			len(e.ContextInfluence), e.Context.Len())
	}
	for _, name := range e.Context.Names() {
		if _, ok := e.ContextInfluence[name]; !ok {
			return NewInvalidFactorError(name, "context factor has no influence entry")
		}
	}
	return nil
}

// CloneChain deep-copies a reasoning chain including evidence slices.
func CloneChain(chain []ReasoningStep) []ReasoningStep {
	if chain == nil {
		return nil
	}
	out := make([]ReasoningStep, len(chain))
	for i, step := range chain {
		out[i] = step
		if step.SupportingEvidence != nil {
			evidence := make([]string, len(step.SupportingEvidence))
			copy(evidence, step.SupportingEvidence)
			out[i].SupportingEvidence = evidence
		}
	}
	return out
}

// CloneMetadata copies a metadata map. Values are scalars, so a shallow
// copy of the entries is a full copy.
func CloneMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	out := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
