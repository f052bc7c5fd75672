// Package record defines the dataset record, its closed field schema, and
// the field resolver used by the query engine.
//
// # Closed Schema
//
// A record has exactly five fields: id, datasetName, name, age and
// department. The schema is a static table of Descriptors built at
// compile time. Field names supplied by callers are resolved against this
// table only; there is no reflective member lookup and no way to register
// additional fields at runtime.
//
// Each Descriptor carries:
//   - a typed accessor returning a Value (Null, Int or String)
//   - the group-key rendering rule ("null", decimal, or the string itself)
//   - the backing store column name, used by querysql
//
// # Values
//
// Value is a sealed interface. Only Null, Int and String implement it, so
// type switches over Value are exhaustive.
package record
