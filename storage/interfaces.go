package storage

import (
	"context"
	"iter"

	"github.com/nexusworks/matchpoint/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent read access.
type Repository interface {
	// FindNearest finds the entities of the given type whose stored vectors
	// are closest to the query vector. Results are ordered by descending raw
	// similarity, ties broken by ascending candidate ID, up to limit results.
	// Entities without a stored vector are skipped.
	FindNearest(ctx context.Context, vector []float32, entityType core.EntityType, limit int) ([]core.CandidateMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EntityRepository provides operations for managing matching entities.
// Entity IDs are unique within their entity-type namespace.
type EntityRepository interface {
	Repository

	// AddEntities adds one or more entities to storage.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns ErrDuplicateKey if an entity with the same type and ID exists.
	AddEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error)

	// UpsertEntities adds or replaces entities, preserving InsertedAt for
	// records that already exist.
	UpsertEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error)

	// UpdateEntities updates existing entities.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any entity doesn't exist.
	UpdateEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error)

	// DeleteEntities removes entities of the given type by their IDs.
	// Returns ErrNotFound if any entity doesn't exist.
	DeleteEntities(ctx context.Context, entityType core.EntityType, ids ...core.EntityID) error

	// GetEntity retrieves a single entity by type and ID.
	// Returns ErrNotFound if the entity doesn't exist.
	GetEntity(ctx context.Context, entityType core.EntityType, id core.EntityID) (*core.Entity, error)

	// GetEntities retrieves multiple entities of one type by their IDs.
	// Returns only the entities that exist (no error for missing entities).
	GetEntities(ctx context.Context, entityType core.EntityType, ids ...core.EntityID) ([]*core.Entity, error)

	// AllEntities returns a restartable sequence over all entities of the
	// given type, ordered by ID. Iteration errors are yielded as the second
	// element; an entity and an error are never yielded together.
	AllEntities(ctx context.Context, entityType core.EntityType) iter.Seq2[*core.Entity, error]

	// CountEntities returns the number of stored entities of the given type.
	CountEntities(ctx context.Context, entityType core.EntityType) (int, error)
}
