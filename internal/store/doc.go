// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Implementations accept a DBTX so the same store works against a pooled
// *sql.DB or inside a transaction obtained through RunInTransaction.
package store
