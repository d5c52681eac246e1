package http

import (
	"context"
	"errors"
	"time"

	"disc-quiz-service/internal/app"
	"disc-quiz-service/internal/domain"
	"disc-quiz-service/internal/infra/memory"
	"go.uber.org/zap"
)

func newTestService(results *memory.ResultStore, code string) *app.QuizService {
	questionnaires := memory.NewQuestionnaireRepository(
		memory.NewStaticQuestionnaireLoader(domain.DISCQuestionnaire()), time.Minute)
	return app.NewQuizService(memory.NewSessionStore(), questionnaires, results, fixedCode(code), zap.NewNop())
}

type fixedCode string

func (c fixedCode) Generate() (string, error) {
	return string(c), nil
}

// failingResults simulates an unwritable store.
type failingResults struct{}

func (failingResults) EnsureSchema(_ context.Context) error { return nil }

func (failingResults) Save(_ context.Context, _ string, _ domain.Distribution) (domain.StoredResult, error) {
	return domain.StoredResult{}, errors.New("disk I/O error")
}

func (failingResults) Find(_ context.Context, _ string) (domain.StoredResult, error) {
	return domain.StoredResult{}, domain.ErrResultNotFound
}
