// Package store provides the embedded, schema-typed, transactional local store.
//
// A Session wraps a GORM connection together with the list of entity schemas it
// manages. It is an explicit object handed to every component that reads or writes
// local state; there is no package-level handle, so each test can open its own
// isolated in-memory session.
//
// # Schemas
//
// Every entity type is a GORM model registered with the session. Migrate creates or
// updates the tables; VerifySchema compares each declared model against the live
// table columns (via database.GetTableColumns) and reports anything missing.
//
// # Transactions
//
// All multi-entity mutations go through Transaction. The callback receives the
// transaction handle and must use it for every read and write: the embedded SQLite
// store runs on a single connection, so touching the session's base handle inside
// the callback would block.
//
// # Usage
//
//	session, err := store.Open(cfg.Database, logg, models.Schemas()...)
//	err = session.Transaction(ctx, func(tx *gorm.DB) error {
//	    return tx.Create(&point).Error
//	})
package store
