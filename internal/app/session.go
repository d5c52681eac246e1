package app

import (
	"time"

	"disc-quiz-service/internal/domain"
)

// SessionState is the lifecycle stage of a quiz session.
type SessionState string

const (
	StateCollecting SessionState = "collecting"
	StateSubmitted  SessionState = "submitted"
)

// Session holds one user's selections until they submit.
// It is a plain value so stores can serialize it.
type Session struct {
	ID              string            `json:"id"`
	QuestionnaireID string            `json:"questionnaireId"`
	State           SessionState      `json:"state"`
	Answers         map[string]string `json:"answers"` // questionID -> optionID
	// Pending is the scored result of an unfinished submit. Its ID is unset
	// until the row is confirmed.
	Pending    *domain.StoredResult `json:"pending,omitempty"`
	Submission *domain.Submission   `json:"submission,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

func newSession(id, questionnaireID string, now time.Time) *Session {
	return &Session{
		ID:              id,
		QuestionnaireID: questionnaireID,
		State:           StateCollecting,
		Answers:         make(map[string]string),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Submitted reports whether the session reached its terminal state.
func (s *Session) Submitted() bool {
	return s.State == StateSubmitted
}

// Clone returns a deep copy so stores never share maps with callers.
func (s *Session) Clone() *Session {
	out := *s
	out.Answers = make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	if s.Pending != nil {
		pending := *s.Pending
		out.Pending = &pending
	}
	if s.Submission != nil {
		sub := *s.Submission
		out.Submission = &sub
	}
	return &out
}

func (s *Session) selectOption(questionnaire domain.Questionnaire, questionID, optionID string, now time.Time) error {
	if s.Submitted() {
		return domain.ErrAlreadySubmitted
	}
	if s.Pending != nil {
		return domain.ErrSubmitPending
	}
	question, ok := questionnaire.Question(questionID)
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if _, ok := question.Option(optionID); !ok {
		return domain.ErrOptionNotFound
	}
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[questionID] = optionID
	s.UpdatedAt = now
	return nil
}

// letters returns the letter of each selected option in questionnaire order.
// Unanswered questions contribute nothing.
func (s *Session) letters(questionnaire domain.Questionnaire) []domain.Letter {
	letters := make([]domain.Letter, 0, len(questionnaire.Questions))
	for _, question := range questionnaire.Questions {
		optionID, ok := s.Answers[question.ID]
		if !ok {
			continue
		}
		if opt, ok := question.Option(optionID); ok {
			letters = append(letters, opt.Letter)
		}
	}
	return letters
}

// hold freezes the scored result before it is written to the result store.
func (s *Session) hold(pending domain.StoredResult, now time.Time) {
	s.Pending = &pending
	s.UpdatedAt = now
}

func (s *Session) release(now time.Time) {
	s.Pending = nil
	s.UpdatedAt = now
}

func (s *Session) markSubmitted(sub domain.Submission) {
	s.State = StateSubmitted
	s.Pending = nil
	s.Submission = &sub
	s.UpdatedAt = sub.SubmittedAt
}
