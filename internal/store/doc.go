// Package store persists extracted transcript records in SQLite.
//
// It owns the two-table schema (students and grades), applies embedded SQL
// migrations at open, and implements the import transaction model: one outer
// transaction per document with a savepoint per student, so a single
// conflicting student rolls back alone while the rest of the batch commits.
// Inserts are idempotent (duplicate identity and grade rows are skipped, never
// overwritten) and the only destructive operation is a filtered bulk delete.
//
// A Store handle is scoped to one operation: callers open it, use it, and
// close it. There is no package-level default instance.
package store
