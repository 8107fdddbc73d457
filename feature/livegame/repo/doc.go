// Package repo holds the queries against the live game tables.
//
// Every function takes a *gorm.DB so the same query runs on a session handle or on the
// tx of an enclosing store transaction. Misses are reported as ErrNotFound.
package repo
