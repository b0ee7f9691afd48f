// Package dataprocessing implements the temporal reconciliation engine for
// OMIE day-ahead prices: it turns raw daily files into two mutually
// consistent datasets, a canonical hourly series over the whole history and
// a quarter-hour series from the reporting cutover onwards.
//
// # Architecture
//
// The engine is a sequence of transformations over immutable tables:
//
//  1. Parser: splits one raw daily file into typed observations
//  2. Classifier: validates a parsed day and decides its native granularity
//  3. Resampler: the single quarter-hour to hourly conversion path
//  4. Merger: new-wins deduplication by (timestamp, zone), sorted output
//  5. Coordinator: one ingestion run over both datasets
//
// # Usage
//
//	coord := dataprocessing.NewCoordinator(discovery, store, dataprocessing.CoordinatorOptions{
//		Parser:  dataprocessing.ParserOptions{Delimiter: ";", HeaderLines: 1},
//		Cutover: cutover,
//		Workers: 4,
//	})
//	summary, err := coord.Run(ctx)
//
// # Error handling
//
// Format and naming problems skip the offending file with a warning; a day
// that does not decompose into 24 complete hour blocks is excluded from
// both datasets; persistence failures abort the run with the previously
// persisted artifacts untouched. See the internal/errors taxonomy.
//
// # Concurrency
//
// Per-file parsing fans out across a bounded worker pool; results are
// re-assembled in deterministic file order before merging, so the output
// never depends on completion order. Merge and assembly are
// single-threaded.
package dataprocessing
