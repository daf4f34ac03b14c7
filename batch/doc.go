// Package batch runs the matching engine over the whole entity store.
//
// The Runner type generates recommendations for every individual and
// organization on a bounded worker pool, collecting per-entity failures
// alongside successes so one bad record never aborts a run. Reports are
// deterministic: result and failure blocks are sorted by source id.
//
// The package also provides the retry and progress primitives shared
// with the ingestion pipeline.
package batch
