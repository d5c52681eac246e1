package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"disc-quiz-service/internal/infra/postgres/migrations"
	"disc-quiz-service/internal/infra/sqlstore"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

const uniqueViolation = "23505"

// OpenDB opens a bun handle over the pgdriver connector.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// NewResultStore returns a result store whose EnsureSchema applies the migrations.
func NewResultStore(db *bun.DB) *sqlstore.ResultStore {
	return sqlstore.NewResultStore(db, Migrate, isUniqueViolation)
}

// Migrate applies every pending migration. Already applied ones are skipped.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// fieldError is satisfied by pgdriver.Error, which exposes protocol fields by key.
type fieldError interface {
	error
	Field(k byte) string
}

var _ fieldError = pgdriver.Error{}

func isUniqueViolation(err error) bool {
	var pgErr fieldError
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}
