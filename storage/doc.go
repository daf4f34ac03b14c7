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


// Package storage provides the storage abstraction layer for matchpoint.
//
// This package defines the repository interfaces that decouple the entity
// store and similarity index from the matching logic. Different backends
// (BadgerDB, in-memory, etc.) can be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: nearest-neighbor search and transaction support
//   - EntityRepository: CRUD and iteration over matching entities
//
// FindNearest is the similarity-index contract the matching engine consumes:
// an ordered list of (candidate ID, raw similarity) pairs for a query vector.
//
// # Usage
//
// Create a repository instance:
//
//	repo, err := badger.NewEntityRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() { repo.Close(); backend.Close() }()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// read access from multiple goroutines; batch matching runs many queries in
// parallel against the same repository.
package storage
