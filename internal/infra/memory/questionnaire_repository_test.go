package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"disc-quiz-service/internal/domain"
)

func TestQuestionnaireRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionnaireLoader: NewStaticQuestionnaireLoader(domain.DISCQuestionnaire()),
	}
	repo := NewQuestionnaireRepository(loader, time.Minute)

	if _, err := repo.GetQuestionnaire(context.Background(), domain.DISCQuestionnaireID); err != nil {
		t.Fatalf("get questionnaire: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	q, err := repo.GetQuestionnaire(context.Background(), domain.DISCQuestionnaireID)
	if err != nil {
		t.Fatalf("get questionnaire 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(q.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(q.Questions))
	}
}

func TestQuestionnaireRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		QuestionnaireLoader: NewStaticQuestionnaireLoader(domain.DISCQuestionnaire()),
	}
	repo := NewQuestionnaireRepository(loader, time.Minute)
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuestionnaire(context.Background(), domain.DISCQuestionnaireID)
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuestionnaire(context.Background(), domain.DISCQuestionnaireID)

	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuestionnaireRepositoryUnknown(t *testing.T) {
	repo := NewQuestionnaireRepository(NewStaticQuestionnaireLoader(), time.Minute)
	_, err := repo.GetQuestionnaire(context.Background(), "missing")
	if !errors.Is(err, domain.ErrQuestionnaireNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	QuestionnaireLoader
	calls int
}

func (l *countingLoader) LoadQuestionnaire(ctx context.Context, questionnaireID string) (domain.Questionnaire, error) {
	l.calls++
	return l.QuestionnaireLoader.LoadQuestionnaire(ctx, questionnaireID)
}
