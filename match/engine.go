// Copyright 2026 Nexusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nexusworks/matchpoint/ai"
	"github.com/nexusworks/matchpoint/core"
	"github.com/nexusworks/matchpoint/storage"
)

// Engine produces ranked recommendations by combining vector similarity
// retrieval with rule-based eligibility filtering and factor scoring.
// An Engine is safe for concurrent use.
type Engine struct {
	entityRepository storage.EntityRepository
	embedder         ai.Embedder
	config           Config
	logger           *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithConfig replaces the default configuration. The configuration is
// validated when the engine is constructed.
func WithConfig(config Config) Option {
	return func(e *Engine) error {
		e.config = config
		return nil
	}
}

// NewEngine creates a new matching engine.
func NewEngine(
	entityRepository storage.EntityRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Engine, error) {
	if entityRepository == nil {
		return nil, ErrEntityRepositoryRequired
	}
	if provider == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		entityRepository: entityRepository,
		embedder:         provider.Embedder(),
		config:           DefaultConfig(),
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Match produces up to topK ranked recommendations for the given entity.
// Candidates are drawn from the configured target type.
func (e *Engine) Match(ctx context.Context, queryType core.EntityType, queryID core.EntityID, topK int) ([]core.Recommendation, error) {
	return e.MatchWithMonitor(ctx, queryType, queryID, topK, nil)
}

// MatchWithMonitor produces recommendations with monitoring. The monitor
// receives callbacks at each stage of the matching process.
//
// Retrieval overfetches by the configured factor to compensate for
// candidates removed by eligibility filtering. If fewer than topK
// survivors remain and the index has more candidates, the fetch size is
// doubled and retrieval retried, up to the configured attempt bound.
func (e *Engine) MatchWithMonitor(ctx context.Context, queryType core.EntityType, queryID core.EntityID, topK int, monitor MatchMonitor) ([]core.Recommendation, error) {
	if topK < 1 {
		return nil, ErrInvalidTopK
	}
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(queryID, topK)

	query, err := e.entityRepository.GetEntity(ctx, queryType, queryID)
	if err != nil {
		e.logger.Error("error loading query entity", "type", queryType, "id", queryID, "err", err)
		return nil, err
	}

	vector, err := e.queryVector(ctx, query)
	if err != nil {
		return nil, err
	}

	fetchSize := e.config.OverfetchFactor * topK
	var scored []scoredCandidate
	for attempt := 0; ; attempt++ {
		candidates, err := e.nearest(ctx, vector, fetchSize)
		if err != nil {
			return nil, err
		}
		monitor.AfterRetrieval(candidates)

		if len(candidates) == 0 {
			if e.config.AllowEmptyPool {
				e.logger.Warn("candidate pool is empty", "targetType", e.config.TargetType)
				results := []core.Recommendation{}
				monitor.Finish(results)
				return results, nil
			}
			return nil, fmt.Errorf("%w: no %s entities indexed", ErrEmptyCandidatePool, e.config.TargetType)
		}

		scored, err = e.filterAndScore(ctx, query, candidates, monitor)
		if err != nil {
			return nil, err
		}

		// Stop widening once enough survivors exist, the index is
		// exhausted, or the retry budget is spent.
		if len(scored) >= topK || len(candidates) < fetchSize || attempt >= e.config.RetryAttempts {
			break
		}
		fetchSize *= 2
		monitor.Retrying(attempt+1, fetchSize)
		e.logger.Debug("widening retrieval", "attempt", attempt+1, "fetchSize", fetchSize,
			"survivors", len(scored), "wanted", topK)
	}

	results := rank(e.config, queryID, scored, topK)
	e.logger.Info("match completed", "queryId", queryID, "topK", topK, "results", len(results))
	monitor.Finish(results)
	return results, nil
}

// queryVector returns the entity's stored vector, embedding its text
// representation on the fly when no vector is stored.
func (e *Engine) queryVector(ctx context.Context, query *core.Entity) ([]float32, error) {
	if len(query.Vector) > 0 {
		return query.Vector, nil
	}
	if query.Text == "" {
		return nil, fmt.Errorf("%w: %s/%s", ErrMissingVector, query.Type, query.Id)
	}

	e.logger.Debug("embedding query text on the fly", "id", query.Id)
	vector, err := e.embedder.EmbedText(ctx, query.Text)
	if err != nil {
		e.logger.Error("error embedding query text", "id", query.Id, "err", err)
		return nil, err
	}
	return core.NormalizeVector(vector), nil
}

// nearest queries the similarity index under the configured timeout.
func (e *Engine) nearest(ctx context.Context, vector []float32, limit int) ([]core.CandidateMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.SearchTimeout)
	defer cancel()

	candidates, err := e.entityRepository.FindNearest(ctx, vector, e.config.TargetType, limit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrRetrievalTimeout, err)
		}
		e.logger.Error("error querying similarity index", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}
	return candidates, nil
}

// filterAndScore loads the candidate entities, drops ineligible
// pairings and scores the survivors.
func (e *Engine) filterAndScore(ctx context.Context, query *core.Entity, candidates []core.CandidateMatch, monitor MatchMonitor) ([]scoredCandidate, error) {
	ids := make([]core.EntityID, 0, len(candidates))
	similarities := make(map[core.EntityID]float32, len(candidates))
	for _, c := range candidates {
		if c.CandidateId == query.Id {
			continue
		}
		ids = append(ids, c.CandidateId)
		similarities[c.CandidateId] = c.RawSimilarity
	}

	entities, err := e.entityRepository.GetEntities(ctx, e.config.TargetType, ids...)
	if err != nil {
		e.logger.Error("error loading candidate entities", "err", err)
		return nil, err
	}

	mandatory := e.config.mandatorySet()
	survivors := make([]core.EntityID, 0, len(entities))
	scored := make([]scoredCandidate, 0, len(entities))
	for _, candidate := range entities {
		if !eligible(query, candidate, mandatory) {
			continue
		}
		survivors = append(survivors, candidate.Id)

		breakdown, composite := scoreCandidate(e.config, query, candidate, similarities[candidate.Id])
		monitor.Scored(candidate.Id, breakdown, composite)
		scored = append(scored, scoredCandidate{
			target:    candidate,
			breakdown: breakdown,
			composite: composite,
		})
	}
	monitor.AfterEligibility(survivors)
	return scored, nil
}
