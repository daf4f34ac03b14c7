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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/nexusworks/matchpoint/ai"
	"github.com/nexusworks/matchpoint/batch"
	"github.com/nexusworks/matchpoint/core"
	"github.com/nexusworks/matchpoint/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline turns external entity documents into stored, embedded
// entities. Documents are validated, rendered into their text
// representation, embedded in batches on a worker pool and upserted.
type Pipeline struct {
	entityRepository storage.EntityRepository
	embedder         ai.Embedder
	pool             *ants.Pool
	batchSize        int
	retryAttempts    int
	retryDelay       time.Duration
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many texts are embedded per call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets the retry policy for embedding calls.
// Default is 3 attempts with a 500ms base delay.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if attempts < 1 {
			attempts = 1
		}
		p.retryAttempts = attempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	entityRepository storage.EntityRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if entityRepository == nil {
		return nil, ErrEntityRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		entityRepository: entityRepository,
		embedder:         provider.Embedder(),
		pool:             pool,
		batchSize:        32,
		retryAttempts:    3,
		retryDelay:       500 * time.Millisecond,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Result reports the outcome of one ingestion run.
type Result struct {
	Ingested int
	Skipped  int
	Failures []Failure
}

// Failure records why one document or batch could not be ingested.
type Failure struct {
	Id  core.EntityID
	Err error
}

// IngestReader decodes a JSON array of documents and ingests them as
// entities of the given type.
func (p *Pipeline) IngestReader(ctx context.Context, entityType core.EntityType, r io.Reader) (*Result, error) {
	docs, err := ReadDocuments(r)
	if err != nil {
		return nil, err
	}
	return p.IngestDocuments(ctx, entityType, docs)
}

// IngestDocuments validates, embeds and upserts the given documents.
// Invalid documents are skipped and reported in the result; embedding
// or storage errors fail their batch, not the run. The run itself only
// fails on input that cannot be decoded at all.
func (p *Pipeline) IngestDocuments(ctx context.Context, entityType core.EntityType, docs []Document) (*Result, error) {
	if err := core.ValidateEntityType(entityType); err != nil {
		return nil, err
	}

	result := &Result{}
	entities := make([]*core.Entity, 0, len(docs))
	for _, doc := range docs {
		entity, err := doc.ToEntity(entityType)
		if err != nil {
			p.logger.Warn("skipping invalid document", "id", doc.Id, "name", doc.Name, "err", err)
			result.Skipped++
			result.Failures = append(result.Failures, Failure{Id: core.EntityID(doc.Id), Err: err})
			continue
		}
		entity.Text = BuildText(entity)
		entities = append(entities, entity)
	}

	if len(entities) == 0 {
		return result, nil
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for start := 0; start < len(entities); start += p.batchSize {
		group := entities[start:min(start+p.batchSize, len(entities))]

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			ingested, err := p.ingestBatch(ctx, group)

			mu.Lock()
			defer mu.Unlock()
			result.Ingested += ingested
			if err != nil {
				p.logger.Error("error ingesting batch", "size", len(group), "err", err)
				result.Skipped += len(group)
				for _, entity := range group {
					result.Failures = append(result.Failures, Failure{Id: entity.Id, Err: err})
				}
			}
		}); err != nil {
			wg.Done()
			return nil, err
		}
	}
	wg.Wait()

	p.logger.Info("ingestion completed", "type", entityType,
		"ingested", result.Ingested, "skipped", result.Skipped)
	return result, nil
}

// ingestBatch embeds one group of entities and upserts them.
func (p *Pipeline) ingestBatch(ctx context.Context, group []*core.Entity) (int, error) {
	texts := make([]string, len(group))
	for i, entity := range group {
		texts[i] = entity.Text
	}

	var vectors [][]float32
	err := batch.RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, p.retryAttempts, p.retryDelay)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(group) {
		return 0, fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(group), len(vectors))
	}

	for i, entity := range group {
		entity.Vector = core.NormalizeVector(vectors[i])
	}

	if _, err := p.entityRepository.UpsertEntities(ctx, group...); err != nil {
		return 0, err
	}
	return len(group), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
