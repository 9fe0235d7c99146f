package explain

import (
	"context"
	"time"

	"github.com/mfeld/lucid/internal/analytics"
	"github.com/mfeld/lucid/internal/config"
	"github.com/mfeld/lucid/internal/influence"
	"github.com/mfeld/lucid/internal/logging"
	"github.com/mfeld/lucid/internal/model"
	"github.com/mfeld/lucid/internal/store"
)

// Engine is the explainability facade: it owns a builder, a store, and
// the scorer policy, and exposes the end-to-end operations a decision
// agent calls. The store lives for the engine's lifetime.
type Engine struct {
	cfg     *config.Config
	scorer  *influence.Scorer
	builder *Builder
	store   *store.Store
	logger  *logging.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	clock   Clock
	metrics *store.Metrics
}

// WithEngineClock overrides the engine builder's time source.
func WithEngineClock(clock Clock) EngineOption {
	return func(o *engineOptions) {
		o.clock = clock
	}
}

// WithStoreMetrics attaches Prometheus metrics to the engine's store.
func WithStoreMetrics(m *store.Metrics) EngineOption {
	return func(o *engineOptions) {
		o.metrics = m
	}
}

// NewEngine creates an engine from the given configuration. A nil
// configuration selects the defaults.
func NewEngine(cfg *config.Config, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	var options engineOptions
	for _, opt := range opts {
		opt(&options)
	}

	scorer := influence.NewScorer(influence.Config{
		BaseWeight:      cfg.BaseWeight,
		CategoryWeights: cfg.CategoryWeights,
	})

	builderOpts := []BuilderOption{}
	if options.clock != nil {
		builderOpts = append(builderOpts, WithClock(options.clock))
	}
	storeOpts := []store.Option{}
	if options.metrics != nil {
		storeOpts = append(storeOpts, store.WithMetrics(options.metrics))
	}

	return &Engine{
		cfg:     cfg,
		scorer:  scorer,
		builder: NewBuilder(scorer, builderOpts...),
		store:   store.New(storeOpts...),
		logger:  logging.GetLogger("engine"),
	}
}

// Generate builds an Explanation and appends it to the engine store in
// one call.
func (e *Engine) Generate(decision string, ctx *model.Context, chain []model.ReasoningStep, confidence float64, metadata map[string]interface{}) (*model.Explanation, error) {
	explanation, err := e.builder.Build(decision, ctx, chain, confidence, metadata)
	if err != nil {
		return nil, err
	}
	if err := e.store.Append(explanation); err != nil {
		return nil, err
	}
	return explanation, nil
}

// Builder returns the engine's builder for callers that append
// separately.
func (e *Engine) Builder() *Builder {
	return e.builder
}

// Store returns the engine's explanation store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Get returns the stored explanation with the given decision id.
func (e *Engine) Get(decisionID string) (*model.Explanation, error) {
	return e.store.Get(decisionID)
}

// History returns the stored explanations within [start, end],
// timestamp ascending. Zero bounds are unrestricted.
func (e *Engine) History(start, end time.Time) []*model.Explanation {
	return e.store.Query(start, end)
}

// SetCategoryWeights replaces the scorer's category-weight table.
// Wired to config hot reload.
func (e *Engine) SetCategoryWeights(weights map[string]float64) {
	e.scorer.SetCategoryWeights(weights)
}

// WatchConfig watches a config file and feeds category-weight changes to
// the scorer as they are saved. The file is loaded once up front, then
// re-applied on every valid change. Blocks until ctx is cancelled;
// returns an error if the initial load fails or the watch cannot start.
func (e *Engine) WatchConfig(ctx context.Context, path string) error {
	watcher, err := config.NewWatcher(config.WatcherConfig{FilePath: path}, func(cfg *config.Config) error {
		e.SetCategoryWeights(cfg.CategoryWeights)
		return nil
	})
	if err != nil {
		return err
	}
	return watcher.Start(ctx)
}

// HistoricalReport computes the aggregate analytics over the stored
// history within [start, end]. The analytics run over one snapshot, so
// concurrent appends do not skew the result.
func (e *Engine) HistoricalReport(ctx context.Context, start, end time.Time) (*analytics.Report, error) {
	snapshot := e.store.Query(start, end)
	e.logger.Debug("building historical report over %d explanations", len(snapshot))
	return analytics.BuildReport(ctx, snapshot, analytics.ReportOptions{
		TrendWindow:      e.cfg.TrendWindowDuration(),
		TopFactors:       e.cfg.TopFactors,
		HistogramBuckets: e.cfg.HistogramBuckets,
	})
}
