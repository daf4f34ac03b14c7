// Package ingestion turns external entity documents into stored,
// embedded entities.
//
// The Pipeline type manages the ingestion workflow:
//   - Decoding and validating JSON documents
//   - Building the deterministic text representation of each entity
//   - Generating unit-normalized embeddings in batches on a worker pool
//   - Upserting the finished entities into storage
//
// Invalid documents are skipped and reported rather than failing the
// run; embedding and storage errors fail only their batch.
package ingestion
