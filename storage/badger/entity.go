package badger

import (
	"context"
	"iter"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/nexusworks/matchpoint/core"
	"github.com/nexusworks/matchpoint/storage"
)

// EntityRepository implements storage.EntityRepository for BadgerDB.
type EntityRepository struct {
	backend *Backend
}

var _ storage.EntityRepository = (*EntityRepository)(nil)

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(backend *Backend) (*EntityRepository, error) {
	if backend == nil {
		return nil, storage.ErrInvalidQuery
	}
	return &EntityRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *EntityRepository) Close() error {
	return nil
}

// FindNearest delegates to the backend.
func (r *EntityRepository) FindNearest(ctx context.Context, vector []float32, entityType core.EntityType, limit int) ([]core.CandidateMatch, error) {
	return r.backend.FindNearest(ctx, vector, entityType, limit)
}

// WithTransaction delegates to the backend.
func (r *EntityRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntities adds one or more entities to storage.
func (r *EntityRepository) AddEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entity := range entities {
			key := makeEntityKey(entity.Type, entity.Id)

			if _, err := tx.Get(key); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			entity.InsertedAt = time.Now().UTC()
			entity.UpdatedAt = entity.InsertedAt

			if err := tx.Set(key, storage.MarshalEntity(entity)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entities, err
}

// UpsertEntities adds or replaces entities. InsertedAt is preserved for
// entities that already exist.
func (r *EntityRepository) UpsertEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, entity := range entities {
			key := makeEntityKey(entity.Type, entity.Id)

			old, err := r.readEntity(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				entity.InsertedAt = old.InsertedAt
			} else {
				entity.InsertedAt = now
			}
			entity.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalEntity(entity)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entities, err
}

// UpdateEntities updates existing entities.
func (r *EntityRepository) UpdateEntities(ctx context.Context, entities ...*core.Entity) ([]*core.Entity, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entity := range entities {
			key := makeEntityKey(entity.Type, entity.Id)

			old, err := r.readEntity(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			entity.InsertedAt = old.InsertedAt
			entity.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalEntity(entity)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entities, err
}

// DeleteEntities removes entities of the given type by their IDs.
func (r *EntityRepository) DeleteEntities(ctx context.Context, entityType core.EntityType, ids ...core.EntityID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntityKey(entityType, id)

			if _, err := tx.Get(key); err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			} else if err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntity retrieves a single entity by type and ID.
func (r *EntityRepository) GetEntity(ctx context.Context, entityType core.EntityType, id core.EntityID) (*core.Entity, error) {
	var entity *core.Entity

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		entity, err = r.readEntity(tx, makeEntityKey(entityType, id))
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, storage.ErrNotFound
	}
	return entity, nil
}

// GetEntities retrieves multiple entities of one type by their IDs.
// Missing entities are skipped.
func (r *EntityRepository) GetEntities(ctx context.Context, entityType core.EntityType, ids ...core.EntityID) ([]*core.Entity, error) {
	entities := make([]*core.Entity, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			entity, err := r.readEntity(tx, makeEntityKey(entityType, id))
			if err != nil {
				return err
			}
			if entity != nil {
				entities = append(entities, entity)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entities, nil
}

// AllEntities returns a restartable sequence over all entities of the given
// type, ordered by ID. Each range over the sequence opens a fresh read
// transaction.
func (r *EntityRepository) AllEntities(ctx context.Context, entityType core.EntityType) iter.Seq2[*core.Entity, error] {
	return func(yield func(*core.Entity, error) bool) {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = makeEntityTypePrefix(entityType)
			it := tx.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				var entity *core.Entity
				err := it.Item().Value(func(val []byte) error {
					var err error
					entity, err = storage.UnmarshalEntity(val)
					return err
				})
				if err != nil {
					return err
				}
				if !yield(entity, nil) {
					return nil
				}
			}
			return nil
		}, false)

		if err != nil {
			yield(nil, err)
		}
	}
}

// CountEntities returns the number of stored entities of the given type.
func (r *EntityRepository) CountEntities(ctx context.Context, entityType core.EntityType) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntityTypePrefix(entityType)
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// readEntity reads and unmarshals an entity by key.
// Returns nil without error when the key does not exist.
func (r *EntityRepository) readEntity(tx *badger.Txn, key []byte) (*core.Entity, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entity *core.Entity
	err = item.Value(func(val []byte) error {
		var err error
		entity, err = storage.UnmarshalEntity(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}
