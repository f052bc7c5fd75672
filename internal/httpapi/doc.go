// Package httpapi exposes the record engine over HTTP.
//
// Routes:
//
//	POST /api/dataset/{dataset}/record           insert one record
//	GET  /api/dataset/{dataset}/query?groupBy=f   group a dataset
//	GET  /api/dataset/{dataset}/query?sortBy=f    sort a dataset (order=asc|desc)
//	GET  /healthz                                 store liveness
//
// Every error response has the shape {error, code, status[, details]}.
// The HTTP status is derived from the engine error kind by statusFor.
package httpapi
