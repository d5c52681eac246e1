package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"disc-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionnaireLoader fetches questionnaire content from a backing store.
type QuestionnaireLoader interface {
	LoadQuestionnaire(ctx context.Context, questionnaireID string) (domain.Questionnaire, error)
}

// QuestionnaireRepository caches questionnaires with TTL to avoid repeated loads.
type QuestionnaireRepository struct {
	loader QuestionnaireLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedQuestionnaire
}

type cachedQuestionnaire struct {
	questionnaire domain.Questionnaire
	expiresAt     time.Time
}

func NewQuestionnaireRepository(loader QuestionnaireLoader, ttl time.Duration) *QuestionnaireRepository {
	return &QuestionnaireRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuestionnaire),
	}
}

func (r *QuestionnaireRepository) GetQuestionnaire(ctx context.Context, questionnaireID string) (domain.Questionnaire, error) {
	if q, ok := r.lookup(questionnaireID); ok {
		return q, nil
	}

	result, err, _ := r.sf.Do(questionnaireID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := r.lookup(questionnaireID); ok {
			return q, nil
		}

		q, err := r.loader.LoadQuestionnaire(ctx, questionnaireID)
		if err != nil {
			return domain.Questionnaire{}, err
		}

		r.mu.Lock()
		r.cache[questionnaireID] = cachedQuestionnaire{
			questionnaire: q,
			expiresAt:     r.clock().Add(r.ttlWithJitterLocked()),
		}
		r.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return domain.Questionnaire{}, err
	}
	return result.(domain.Questionnaire), nil
}

func (r *QuestionnaireRepository) lookup(questionnaireID string) (domain.Questionnaire, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[questionnaireID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.Questionnaire{}, false
	}
	return entry.questionnaire, true
}

// ttlWithJitterLocked adds up to 10% jitter to spread expirations. Caller holds mu.
func (r *QuestionnaireRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticQuestionnaireLoader is a loader backed by an in-memory map (built-in form, tests).
type StaticQuestionnaireLoader struct {
	questionnaires map[string]domain.Questionnaire
}

func NewStaticQuestionnaireLoader(questionnaires ...domain.Questionnaire) *StaticQuestionnaireLoader {
	byID := make(map[string]domain.Questionnaire, len(questionnaires))
	for _, q := range questionnaires {
		byID[q.ID] = q
	}
	return &StaticQuestionnaireLoader{questionnaires: byID}
}

func (l *StaticQuestionnaireLoader) LoadQuestionnaire(_ context.Context, questionnaireID string) (domain.Questionnaire, error) {
	if q, ok := l.questionnaires[questionnaireID]; ok {
		return q, nil
	}
	return domain.Questionnaire{}, domain.ErrQuestionnaireNotFound
}
