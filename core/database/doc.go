// Package database handles the local store connection and schema inspection.
//
// It wraps GORM to open either an embedded SQLite file (the default, used on a
// scorekeeper's device) or a MySQL database, based on the application's configuration.
//
// # Connect
//
// Connect opens the configured driver and pings it. SQLite connections are limited to a
// single open connection: an in-memory SQLite database only exists on the connection that
// created it, and the tracker has a single writer.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table so the store can verify that every
// declared entity schema (games, points, actions, references) is fully materialized.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "points")
package database
