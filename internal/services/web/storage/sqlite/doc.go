// Package sqlite stores encoded query results in a local SQLite file so a
// restarted process can reuse them. Every row is derived from backend reads
// and can be discarded.
package sqlite
