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

import "errors"

var (
	// ErrInvalidConfiguration indicates malformed weights or thresholds.
	// It is fatal at engine construction; a configured engine never
	// re-validates per call.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyCandidatePool indicates the similarity index returned zero
	// candidates. Only reported when Config.AllowEmptyPool is false;
	// otherwise an empty recommendation list is returned.
	ErrEmptyCandidatePool = errors.New("empty candidate pool")

	// ErrRetrievalTimeout indicates the similarity index lookup exceeded the
	// configured timeout. Fails the single query, not a batch.
	ErrRetrievalTimeout = errors.New("retrieval timeout")

	// ErrIndexUnavailable indicates the similarity index failed for a reason
	// other than a timeout.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrEntityRepositoryRequired is returned when an entity repository is
	// not provided.
	ErrEntityRepositoryRequired = errors.New("entity repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidTopK is returned when topK is below 1.
	ErrInvalidTopK = errors.New("topK must be at least 1")

	// ErrMissingVector indicates the query entity has no stored vector and
	// no text to embed on the fly.
	ErrMissingVector = errors.New("query entity has no vector or text")
)
