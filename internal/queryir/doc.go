// Package queryir is the query intermediate representation between the
// engine and record store backends.
//
// The engine never builds SQL. It builds a Query, and a backend compiles or
// interprets it:
//
//	[engine] → [Query IR] → [querysql → SQLite]
//	                      → [memstore]
//
// # Sealed Interface
//
// Query is sealed with a marker method; only ListDataset and ExistsID
// implement it. Backends use exhaustive type switches:
//
//	switch q := query.(type) {
//	case ListDataset:
//	    // dataset scan, optionally ordered
//	case ExistsID:
//	    // global id existence
//	}
//
// # Field Safety
//
// Ordering terms reference record.Field constants, never raw strings, so a
// Query cannot name a column outside the record schema. Validate re-checks
// this for queries assembled by hand.
package queryir
