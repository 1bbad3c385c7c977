// Package sink persists ingestion records to an append-only CSV log.
//
// Semantics:
//   - The header is written exactly once per file, on first creation.
//   - Every Write flushes synchronously; rows are never batched or reordered.
//   - Rows are never updated or deleted.
package sink
