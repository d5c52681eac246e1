// Package sqlstore holds the bun-backed result store shared by the SQL dialects.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"disc-quiz-service/internal/domain"
	"github.com/uptrace/bun"
)

// SchemaFunc creates the results table when it is missing. It must be idempotent.
type SchemaFunc func(ctx context.Context, db *bun.DB) error

// DuplicateFunc reports whether a driver error is a unique-constraint violation.
type DuplicateFunc func(err error) bool

// ResultRow maps the resultados table.
type ResultRow struct {
	bun.BaseModel `bun:"table:resultados"`

	ID                int64   `bun:"id,pk,autoincrement"`
	Code              string  `bun:"codigo"`
	Dominance         float64 `bun:"dominancia"`
	Influence         float64 `bun:"influencia"`
	Steadiness        float64 `bun:"estabilidade"`
	Conscientiousness float64 `bun:"conformidade"`
}

func (r ResultRow) toDomain() domain.StoredResult {
	return domain.StoredResult{
		ID:   r.ID,
		Code: r.Code,
		Distribution: domain.Distribution{
			Dominance:         r.Dominance,
			Influence:         r.Influence,
			Steadiness:        r.Steadiness,
			Conscientiousness: r.Conscientiousness,
		},
	}
}

// ResultStore persists scored results through bun.
type ResultStore struct {
	db          *bun.DB
	schema      SchemaFunc
	isDuplicate DuplicateFunc
}

func NewResultStore(db *bun.DB, schema SchemaFunc, isDuplicate DuplicateFunc) *ResultStore {
	return &ResultStore{db: db, schema: schema, isDuplicate: isDuplicate}
}

func (s *ResultStore) EnsureSchema(ctx context.Context) error {
	if err := s.schema(ctx, s.db); err != nil {
		return fmt.Errorf("ensure results schema: %w", err)
	}
	return nil
}

func (s *ResultStore) Save(ctx context.Context, code string, dist domain.Distribution) (domain.StoredResult, error) {
	row := ResultRow{
		Code:              code,
		Dominance:         dist.Dominance,
		Influence:         dist.Influence,
		Steadiness:        dist.Steadiness,
		Conscientiousness: dist.Conscientiousness,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		if s.isDuplicate != nil && s.isDuplicate(err) {
			return domain.StoredResult{}, fmt.Errorf("save result %s: %w", code, domain.ErrDuplicateCode)
		}
		return domain.StoredResult{}, fmt.Errorf("save result: %w", err)
	}
	return row.toDomain(), nil
}

func (s *ResultStore) Find(ctx context.Context, code string) (domain.StoredResult, error) {
	var row ResultRow
	err := s.db.NewSelect().Model(&row).Where("codigo = ?", code).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredResult{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.StoredResult{}, fmt.Errorf("find result: %w", err)
	}
	return row.toDomain(), nil
}

// DB exposes the handle for direct queries in adapter tests and migrations.
func (s *ResultStore) DB() *bun.DB {
	return s.db
}

// Close releases the underlying connection pool.
func (s *ResultStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
