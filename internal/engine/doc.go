// Package engine implements the dynamic field-query engine: group-by and
// sort-by over a dataset's records, and the write gate that guards inserts.
//
// # Operations
//
//   - Insert: requires an id, refuses an id already present in any
//     dataset, stamps the dataset name, persists once
//   - GroupBy: partitions a dataset by the canonical key of one field
//   - SortBy: orders a dataset by one field, pushing the sort to the store
//
// Field names are resolved through record.Resolve before the store is
// touched. An unknown field never reaches the store.
//
// # Empty Datasets
//
// A dataset exists only while at least one record carries its name. An
// empty result from the store is reported as DATASET_NOT_FOUND; unknown
// and empty datasets are indistinguishable.
//
// # Errors
//
// Every failure is an *Error with a stable Kind. Callers switch on KindOf(err)
// to produce a user-facing response. Store failures are wrapped as
// STORE_UNAVAILABLE and never retried here.
//
// # Concurrency
//
// Engine holds no mutable state and is safe for concurrent use. Duplicate
// detection is atomic when the store implements AtomicInserter; otherwise
// two concurrent inserts of the same id can both pass the existence check.
package engine
