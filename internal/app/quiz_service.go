package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"disc-quiz-service/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}

// QuestionnaireRepository loads questionnaire content (from cache/backing store).
type QuestionnaireRepository interface {
	GetQuestionnaire(ctx context.Context, questionnaireID string) (domain.Questionnaire, error)
}

// ResultStore persists scored results keyed by access code.
type ResultStore interface {
	// EnsureSchema is idempotent and safe to call on every start.
	EnsureSchema(ctx context.Context) error
	// Save fails with domain.ErrDuplicateCode when the code is taken.
	Save(ctx context.Context, code string, dist domain.Distribution) (domain.StoredResult, error)
	// Find fails with domain.ErrResultNotFound when no row has the code.
	Find(ctx context.Context, code string) (domain.StoredResult, error)
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	sessions       SessionRepository
	questionnaires QuestionnaireRepository
	results        ResultStore
	codes          CodeGenerator
	logger         *zap.Logger
	now            func() time.Time
}

func NewQuizService(sessions SessionRepository, questionnaires QuestionnaireRepository, results ResultStore, codes CodeGenerator, logger *zap.Logger) *QuizService {
	return NewQuizServiceWithClock(sessions, questionnaires, results, codes, logger, time.Now)
}

// NewQuizServiceWithClock is test-only for deterministic timestamps.
func NewQuizServiceWithClock(sessions SessionRepository, questionnaires QuestionnaireRepository, results ResultStore, codes CodeGenerator, logger *zap.Logger, now func() time.Time) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		sessions:       sessions,
		questionnaires: questionnaires,
		results:        results,
		codes:          codes,
		logger:         logger,
		now:            now,
	}
}

// Start opens a new collecting session for a questionnaire.
func (s *QuizService) Start(ctx context.Context, questionnaireID string) (*Session, domain.Questionnaire, error) {
	questionnaire, err := s.questionnaires.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, domain.Questionnaire{}, err
	}

	session := newSession(uuid.NewString(), questionnaire.ID, s.now())
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, domain.Questionnaire{}, fmt.Errorf("create session: %w", err)
	}
	s.logger.Debug("session started",
		zap.String("session_id", session.ID),
		zap.String("questionnaire_id", questionnaire.ID))
	return session, questionnaire, nil
}

// Session loads a session together with its questionnaire.
func (s *QuizService) Session(ctx context.Context, sessionID string) (*Session, domain.Questionnaire, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.Questionnaire{}, err
	}
	questionnaire, err := s.questionnaires.GetQuestionnaire(ctx, session.QuestionnaireID)
	if err != nil {
		return nil, domain.Questionnaire{}, err
	}
	return session, questionnaire, nil
}

// Select records the chosen option for a question, replacing any earlier choice.
func (s *QuizService) Select(ctx context.Context, sessionID, questionID, optionID string) (*Session, error) {
	session, questionnaire, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.selectOption(questionnaire, questionID, optionID, s.now()); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Submit scores the selections, stores the result under a fresh access code and
// closes the session. Incomplete selections are scored as they are.
//
// The scored result and its code are saved on the session before the insert,
// so a submit that fails after the row was written finishes on retry with the
// same row instead of storing a second one. A code taken by another session
// releases the pending result; the next submit draws a new code.
func (s *QuizService) Submit(ctx context.Context, sessionID string) (domain.Submission, error) {
	session, questionnaire, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.Submission{}, err
	}
	if session.Submitted() {
		return domain.Submission{}, domain.ErrAlreadySubmitted
	}

	retry := session.Pending != nil
	if !retry {
		code, err := s.codes.Generate()
		if err != nil {
			return domain.Submission{}, err
		}
		session.hold(domain.StoredResult{
			Code:         code,
			Distribution: Score(session.letters(questionnaire)),
		}, s.now())
		if err := s.sessions.Save(ctx, session); err != nil {
			return domain.Submission{}, fmt.Errorf("save session: %w", err)
		}
	}
	pending := *session.Pending

	stored, err := s.results.Save(ctx, pending.Code, pending.Distribution)
	if errors.Is(err, domain.ErrDuplicateCode) && retry {
		stored, err = s.confirmPending(ctx, pending)
	}
	if err != nil {
		s.logger.Error("save result failed",
			zap.String("session_id", session.ID),
			zap.String("access_code", pending.Code),
			zap.Bool("retry", retry),
			zap.Error(err))
		if errors.Is(err, domain.ErrDuplicateCode) {
			session.release(s.now())
			if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
				s.logger.Warn("release pending result failed",
					zap.String("session_id", session.ID),
					zap.Error(saveErr))
			}
		}
		return domain.Submission{}, err
	}

	submission := domain.Submission{
		SessionID:   session.ID,
		Result:      stored,
		SubmittedAt: s.now(),
	}
	session.markSubmitted(submission)
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Submission{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("quiz submitted",
		zap.String("session_id", session.ID),
		zap.String("access_code", stored.Code),
		zap.Int64("result_id", stored.ID))
	return submission, nil
}

// confirmPending resolves a duplicate code on retry. The row belongs to this
// session when it carries the same scores; otherwise the code collided.
func (s *QuizService) confirmPending(ctx context.Context, pending domain.StoredResult) (domain.StoredResult, error) {
	stored, err := s.results.Find(ctx, pending.Code)
	if err != nil {
		return domain.StoredResult{}, fmt.Errorf("confirm pending result: %w", err)
	}
	if stored.Distribution != pending.Distribution {
		return domain.StoredResult{}, fmt.Errorf("confirm pending result %s: %w", pending.Code, domain.ErrDuplicateCode)
	}
	return stored, nil
}
