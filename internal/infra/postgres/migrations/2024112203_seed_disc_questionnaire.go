package migrations

import (
	"context"
	"encoding/json"

	"disc-quiz-service/internal/domain"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			data, err := json.Marshal(domain.DISCQuestionnaire())
			if err != nil {
				return err
			}
			_, err = db.ExecContext(ctx,
				`INSERT INTO questionnaires (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
				domain.DISCQuestionnaireID, string(data))
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DELETE FROM questionnaires WHERE id = ?`, domain.DISCQuestionnaireID)
			return err
		},
	)
}
