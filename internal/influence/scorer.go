// Package influence computes normalized per-factor influence scores for a
// single decision. The heuristic combines evidence occurrence counts with
// a configurable category-weight table; explicit caller weight hints take
// precedence. Raw contributions are min-max normalized within one
// explanation so the strongest factor scores 1.0.
package influence

import (
	"sync"

	"github.com/mfeld/lucid/internal/logging"
	"github.com/mfeld/lucid/internal/model"
)

// DefaultBaseWeight is the raw contribution of a factor with no evidence
// occurrences under a uniform category prior.
const DefaultBaseWeight = 1.0

// Config holds the tunable policy surface of the scorer. The exact
// weights are a policy choice; the normalization contract (min-max per
// explanation, tie means all 1.0) is not.
type Config struct {
	// BaseWeight is the starting raw contribution per factor.
	// Zero means DefaultBaseWeight.
	BaseWeight float64
	// CategoryWeights maps factor categories to prior multipliers.
	// Categories absent from the table use a uniform 1.0 prior.
	CategoryWeights map[string]float64
}

// Scorer computes context influence mappings. Safe for concurrent use;
// the category-weight table may be swapped at runtime (config hot reload).
type Scorer struct {
	mu     sync.RWMutex
	base   float64
	priors map[string]float64
	logger *logging.Logger
}

// NewScorer creates a scorer with the given policy configuration.
func NewScorer(cfg Config) *Scorer {
	base := cfg.BaseWeight
	if base <= 0 {
		base = DefaultBaseWeight
	}
	priors := make(map[string]float64, len(cfg.CategoryWeights))
	for category, weight := range cfg.CategoryWeights {
		priors[category] = weight
	}
	return &Scorer{
		base:   base,
		priors: priors,
		logger: logging.GetLogger("influence"),
	}
}

// SetCategoryWeights replaces the category-weight table. Used by config
// hot reload; in-flight Score calls keep the table they started with.
func (s *Scorer) SetCategoryWeights(weights map[string]float64) {
	priors := make(map[string]float64, len(weights))
	for category, weight := range weights {
		priors[category] = weight
	}
	s.mu.Lock()
	s.priors = priors
	s.mu.Unlock()
	s.logger.Debug("category weight table replaced, %d entries", len(priors))
}

// Score computes the normalized influence mapping for one decision.
// The result has exactly one entry per factor in ctx. An empty context
// yields an empty mapping. Evidence entries that do not name a context
// factor are ignored; matching is exact and case-sensitive.
func (s *Scorer) Score(ctx *model.Context, chain []model.ReasoningStep) map[string]float64 {
	scores := make(map[string]float64, ctx.Len())
	if ctx.Len() == 0 {
		return scores
	}

	occurrences := countEvidenceOccurrences(ctx, chain)

	s.mu.RLock()
	base := s.base
	priors := s.priors
	s.mu.RUnlock()

	raw := make(map[string]float64, ctx.Len())
	minRaw, maxRaw := 0.0, 0.0
	first := true
	for _, factor := range ctx.Factors() {
		var contribution float64
		if factor.WeightHint != nil {
			contribution = *factor.WeightHint
		} else {
			prior := 1.0
			if p, ok := priors[factor.Category]; ok {
				prior = p
			}
			contribution = (base + float64(occurrences[factor.Name])) * prior
		}
		raw[factor.Name] = contribution
		if first || contribution < minRaw {
			minRaw = contribution
		}
		if first || contribution > maxRaw {
			maxRaw = contribution
		}
		first = false
	}

	// All raw contributions equal (including the single-factor case):
	// no discrimination between factors, every score is 1.0.
	if maxRaw == minRaw {
		for name := range raw {
			scores[name] = 1.0
		}
		return scores
	}

	spread := maxRaw - minRaw
	for name, contribution := range raw {
		scores[name] = (contribution - minRaw) / spread
	}
	return scores
}

// countEvidenceOccurrences counts, per context factor, how many evidence
// entries across the chain reference the factor by exact name.
func countEvidenceOccurrences(ctx *model.Context, chain []model.ReasoningStep) map[string]int {
	occurrences := make(map[string]int, ctx.Len())
	for _, step := range chain {
		for _, evidence := range step.SupportingEvidence {
			if ctx.Contains(evidence) {
				occurrences[evidence]++
			}
		}
	}
	return occurrences
}
