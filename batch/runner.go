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


package batch

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/nexusworks/matchpoint/core"
	"github.com/nexusworks/matchpoint/match"
	"github.com/nexusworks/matchpoint/storage"
	"github.com/panjf2000/ants/v2"
)

// sourceTypes are the entity types recommendations are generated for.
var sourceTypes = []core.EntityType{
	core.EntityTypeIndividual,
	core.EntityTypeOrganization,
}

// Runner generates recommendations for every individual and
// organization in the store on a bounded worker pool. Per-entity
// failures are collected alongside successes; a run only aborts when
// the store itself cannot be enumerated.
type Runner struct {
	engine           *match.Engine
	entityRepository storage.EntityRepository
	pool             *ants.Pool
	topK             int
	progressWriter   io.Writer
	progressInterval int
	logger           *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the worker pool size for concurrent matching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithTopK sets how many recommendations are generated per entity.
// Default is 5.
func WithTopK(topK int) Option {
	return func(r *Runner) error {
		if topK < 1 {
			return match.ErrInvalidTopK
		}
		r.topK = topK
		return nil
	}
}

// WithProgress enables progress reporting to the given writer,
// reporting every interval entities.
func WithProgress(writer io.Writer, interval int) Option {
	return func(r *Runner) error {
		if interval < 1 {
			interval = 1
		}
		r.progressWriter = writer
		r.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a new batch recommendation runner.
func NewRunner(
	engine *match.Engine,
	entityRepository storage.EntityRepository,
	opts ...Option,
) (*Runner, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if entityRepository == nil {
		return nil, ErrEntityRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		engine:           engine,
		entityRepository: entityRepository,
		pool:             pool,
		topK:             5,
		progressInterval: 10,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}

	return r, nil
}

// source identifies one entity recommendations are generated for.
type source struct {
	id         core.EntityID
	entityType core.EntityType
}

// EntityResult holds the recommendations generated for one entity.
type EntityResult struct {
	SourceId        core.EntityID         `json:"sourceId"`
	SourceType      core.EntityType       `json:"sourceType"`
	Recommendations []core.Recommendation `json:"recommendations"`
}

// Failure records one entity whose recommendations could not be
// generated.
type Failure struct {
	EntityId   core.EntityID   `json:"entityId"`
	EntityType core.EntityType `json:"entityType"`
	Err        error           `json:"-"`
	Error      string          `json:"error"`
}

// Report is the deterministic outcome of one batch run. Results and
// failures are sorted by source id.
type Report struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	TopK        int            `json:"topK"`
	Processed   int            `json:"processed"`
	Failed      int            `json:"failed"`
	Results     []EntityResult `json:"results"`
	Failures    []Failure      `json:"failures,omitempty"`
}

// Run generates recommendations for every individual and organization
// in the store. Work units are independent; one entity failing does not
// stop the others.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	sources, err := r.collectSources(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Info("batch run starting", "entities", len(sources), "topK", r.topK)

	var progress *ProgressTracker
	if r.progressWriter != nil {
		progress = NewProgressTracker(r.progressWriter, len(sources), r.progressInterval)
		progress.Start()
	}

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		TopK:        r.topK,
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, src := range sources {
		wg.Add(1)
		if err := r.pool.Submit(func() {
			defer wg.Done()
			recommendations, err := r.engine.Match(ctx, src.entityType, src.id, r.topK)

			mu.Lock()
			if err != nil {
				r.logger.Warn("error generating recommendations", "type", src.entityType, "id", src.id, "err", err)
				report.Failures = append(report.Failures, Failure{
					EntityId:   src.id,
					EntityType: src.entityType,
					Err:        err,
					Error:      err.Error(),
				})
			} else {
				report.Results = append(report.Results, EntityResult{
					SourceId:        src.id,
					SourceType:      src.entityType,
					Recommendations: recommendations,
				})
			}
			mu.Unlock()

			if progress != nil {
				progress.Increment(1)
			}
		}); err != nil {
			wg.Done()
			return nil, err
		}
	}
	wg.Wait()

	if progress != nil {
		progress.Finish()
	}

	slices.SortFunc(report.Results, func(a, b EntityResult) int {
		return cmp.Compare(a.SourceId, b.SourceId)
	})
	slices.SortFunc(report.Failures, func(a, b Failure) int {
		return cmp.Compare(a.EntityId, b.EntityId)
	})
	report.Processed = len(report.Results)
	report.Failed = len(report.Failures)

	r.logger.Info("batch run completed", "processed", report.Processed, "failed", report.Failed)
	return report, nil
}

// collectSources enumerates all individuals and organizations.
func (r *Runner) collectSources(ctx context.Context) ([]source, error) {
	var sources []source
	for _, entityType := range sourceTypes {
		for entity, err := range r.entityRepository.AllEntities(ctx, entityType) {
			if err != nil {
				return nil, err
			}
			sources = append(sources, source{id: entity.Id, entityType: entityType})
		}
	}
	return sources, nil
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
