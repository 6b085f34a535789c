// Package contextstore persists the append-only personalization context
// log: every free-text user interaction becomes an immutable Record
// carrying its semantic analysis, extracted keywords, importance score, and
// an optional embedding vector.
//
// Records are never mutated or deleted after creation. A later record of
// the same type does not overwrite an earlier one; history accumulates, and
// the profile builder depends on that completeness. Storage failures are
// therefore propagated to callers rather than swallowed.
//
// Persistence is abstracted behind PersistenceAdapter; MemoryStore covers
// tests and ephemeral use, SQLiteStore covers durable single-node
// deployments. Adapters must be safe for concurrent use: appends are
// independent inserts and never read-modify-write.
//
// Embeddings are attached best-effort at write time. A missing or failing
// embedding provider degrades the record to keyword-only retrieval; it is
// never a write failure.
package contextstore
