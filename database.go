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


package matchpoint

import (
	"log/slog"

	"github.com/nexusworks/matchpoint/ai"
	"github.com/nexusworks/matchpoint/ai/openai"
	"github.com/nexusworks/matchpoint/batch"
	"github.com/nexusworks/matchpoint/ingestion"
	"github.com/nexusworks/matchpoint/match"
	"github.com/nexusworks/matchpoint/storage"
	"github.com/nexusworks/matchpoint/storage/badger"
)

// Database bundles the storage backend, entity repository and AI
// provider, and acts as the factory for engines, pipelines and runners.
type Database struct {
	backend    *badger.Backend
	entityRepo storage.EntityRepository
	provider   ai.AIProvider
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the embedding endpoint configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider replaces the default OpenAI-compatible provider, for
// example with a mock in tests.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory. Intended for tests.
func WithInMemoryStorage() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the entity store at filePath and wires it to an
// embedding provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create entity repository
	entityRepo, err := badger.NewEntityRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			entityRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:    backend,
		entityRepo: entityRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.entityRepo.Close(); err != nil {
		db.logger.Error("error closing entity repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) EntityRepository() storage.EntityRepository {
	return db.entityRepo
}

// NewEngine creates a matching engine over this database.
func (db *Database) NewEngine(opts ...match.Option) (*match.Engine, error) {
	return match.NewEngine(db.entityRepo, db.provider, opts...)
}

// NewIngestionPipeline creates an ingestion pipeline over this database.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.entityRepo, db.provider, opts...)
}

// NewBatchRunner creates a batch recommendation runner using the given
// engine.
func (db *Database) NewBatchRunner(engine *match.Engine, opts ...batch.Option) (*batch.Runner, error) {
	return batch.NewRunner(engine, db.entityRepo, opts...)
}
