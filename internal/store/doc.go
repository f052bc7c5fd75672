// Package store provides SQLite-backed durable storage for dataset records.
//
// The store is the record store collaborator of the query engine:
//   - FindByDataset: all records of a dataset in insertion order
//   - FindByDatasetSorted: records of a dataset ordered by a schema field
//   - ExistsByID: global id existence check
//   - Save: upsert by id
//   - InsertIfAbsent: atomic insert that refuses an existing id
//
// # Ordering
//
// Every list query is compiled by querysql and ends with "seq ASC". seq is
// an AUTOINCREMENT column, so ties on the sort field keep insertion order
// and an unsorted scan returns records in the order they were written.
//
// # Atomic Inserts
//
// InsertIfAbsent uses INSERT ... ON CONFLICT(id) DO NOTHING and inspects
// RowsAffected, so the duplicate check and the write are one statement.
// Two concurrent inserts with the same id cannot both succeed.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package store
