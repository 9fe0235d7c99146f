// Package explain assembles immutable Explanation records and provides
// the engine facade tying the builder, the store, and the analytics
// together, plus renderer-agnostic summaries of single records.
package explain

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfeld/lucid/internal/influence"
	"github.com/mfeld/lucid/internal/logging"
	"github.com/mfeld/lucid/internal/model"
)

// Clock supplies timestamps. Overridable for deterministic tests.
type Clock func() time.Time

// Builder constructs Explanation records. It validates inputs, consults
// the influence scorer, assigns uuid decision ids, and guarantees
// non-decreasing timestamps across records it builds.
type Builder struct {
	mu     sync.Mutex
	scorer *influence.Scorer
	clock  Clock
	last   time.Time
	logger *logging.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the builder's time source.
func WithClock(clock Clock) BuilderOption {
	return func(b *Builder) {
		b.clock = clock
	}
}

// NewBuilder creates a builder backed by the given scorer.
func NewBuilder(scorer *influence.Scorer, opts ...BuilderOption) *Builder {
	b := &Builder{
		scorer: scorer,
		clock:  time.Now,
		logger: logging.GetLogger("builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles an Explanation from a decision, its context, the
// reasoning chain that produced it, and the decision confidence.
//
// The context, chain, and metadata are snapshotted: later mutation of
// the caller's values does not affect the record. Build has no side
// effects beyond returning the record; appending it to a store is a
// separate explicit call.
//
// Fails with InvalidConfidenceError when confidence is outside [0, 1],
// InvalidReasoningChainError when step indices are not contiguous from
// 0, and InvalidMetadataError when a metadata value is not a scalar.
func (b *Builder) Build(decision string, ctx *model.Context, chain []model.ReasoningStep, confidence float64, metadata map[string]interface{}) (*model.Explanation, error) {
	if confidence < 0.0 || confidence > 1.0 {
		return nil, &model.InvalidConfidenceError{Confidence: confidence}
	}
	if err := model.ValidateChain(chain); err != nil {
		return nil, err
	}
	if err := model.ValidateMetadata(metadata); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = model.EmptyContext()
	}

	e := &model.Explanation{
		DecisionID:       uuid.NewString(),
		Decision:         decision,
		Context:          snapshotContext(ctx),
		ReasoningChain:   model.CloneChain(chain),
		Confidence:       confidence,
		ContextInfluence: b.scorer.Score(ctx, chain),
		Metadata:         model.CloneMetadata(metadata),
		Timestamp:        b.nextTimestamp(),
	}

	b.logger.DebugWithFields("explanation built",
		logging.Field("decision_id", e.DecisionID),
		logging.Field("factors", ctx.Len()),
		logging.Field("steps", len(chain)),
	)
	return e, nil
}

// nextTimestamp returns the current time, clamped so timestamps never
// decrease across records built by this builder.
func (b *Builder) nextTimestamp() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock()
	if now.Before(b.last) {
		now = b.last
	}
	b.last = now
	return now
}

// snapshotContext copies a context. Context values are immutable once
// constructed, so rebuilding from the factor copies is a deep snapshot.
func snapshotContext(ctx *model.Context) *model.Context {
	if ctx.Len() == 0 {
		return model.EmptyContext()
	}
	// Factors() already copies; NewContext cannot fail on factors that
	// passed construction once.
	snapshot, err := model.NewContext(ctx.Factors())
	if err != nil {
		// Unreachable for a context built through NewContext.
		panic(err)
	}
	return snapshot
}
