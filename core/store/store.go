package store

import (
	"context"
	"fmt"

	"game-tracker/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Session is a handle on the local store.
type Session struct {
	db      *gorm.DB
	logger  *zap.Logger
	schemas []any
}

// SchemaReport describes how one declared schema compares to its live table.
type SchemaReport struct {
	// Table is the table backing the schema.
	Table string `json:"table"`
	// Missing lists declared columns absent from the table.
	Missing []string `json:"missing"`
}

// OK reports whether the table carries every declared column.
func (r SchemaReport) OK() bool {
	return len(r.Missing) == 0
}

// Open connects to the configured database and migrates the given schemas.
func Open(ctx context.Context, cfg database.Config, logger *zap.Logger, schemas ...any) (*Session, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	s := NewSession(db, logger, schemas...)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	logger.Info("Local store ready", zap.String("driver", cfg.Driver), zap.Int("schemas", len(schemas)))
	return s, nil
}

// NewSession wraps an existing connection. Nothing is migrated.
func NewSession(db *gorm.DB, logger *zap.Logger, schemas ...any) *Session {
	return &Session{db: db, logger: logger, schemas: schemas}
}

// DB returns the base handle bound to ctx, for reads outside a transaction.
func (s *Session) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Migrate creates or updates the tables of every registered schema.
func (s *Session) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(s.schemas...); err != nil {
		return fmt.Errorf("failed to migrate local store: %w", err)
	}
	return nil
}

// Transaction runs fn atomically. Any error returned by fn rolls back every write
// made through tx.
func (s *Session) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// VerifySchema compares every registered schema with the live table columns.
func (s *Session) VerifySchema(ctx context.Context) ([]SchemaReport, error) {
	db := s.db.WithContext(ctx)
	reports := make([]SchemaReport, 0, len(s.schemas))

	for _, model := range s.schemas {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse schema %T: %w", model, err)
		}

		columns, err := database.GetTableColumns(db, stmt.Schema.Table)
		if err != nil {
			return nil, err
		}
		live := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			live[col.Field] = struct{}{}
		}

		report := SchemaReport{Table: stmt.Schema.Table, Missing: []string{}}
		for _, name := range stmt.Schema.DBNames {
			if _, ok := live[name]; !ok {
				report.Missing = append(report.Missing, name)
			}
		}
		if !report.OK() {
			s.logger.Warn("Schema drift detected",
				zap.String("table", report.Table),
				zap.Strings("missing", report.Missing))
		}
		reports = append(reports, report)
	}

	return reports, nil
}
