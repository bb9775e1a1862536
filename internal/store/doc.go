// Package store defines the persistence interfaces for users and element
// profiles, the shared store errors, and the transaction helper. The
// PostgreSQL implementations live in internal/platform/postgres.
package store
