package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"disc-quiz-service/internal/infra/sqlstore"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "disc_test.db"

const createResultsSQL = `
CREATE TABLE IF NOT EXISTS resultados (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    codigo TEXT UNIQUE,
    dominancia REAL,
    influencia REAL,
    estabilidade REAL,
    conformidade REAL
)`

// Open opens the SQLite file at path and returns a result store over it.
// The schema is not touched until EnsureSchema is called.
func Open(path string) (*sqlstore.ResultStore, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer; a single connection serializes submissions.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return sqlstore.NewResultStore(db, ensureSchema, isUniqueViolation), nil
}

func ensureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, createResultsSQL)
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Connections without extended result codes only report the primary code.
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}
