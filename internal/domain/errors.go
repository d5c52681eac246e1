package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionnaireNotFound indicates the questionnaire could not be loaded.
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAlreadySubmitted is returned when a session has already been scored.
	ErrAlreadySubmitted = errors.New("quiz session already submitted")
	// ErrDuplicateCode is returned when an access code is already stored.
	ErrDuplicateCode = errors.New("access code already exists")
	// ErrResultNotFound is returned when no stored result has the access code.
	ErrResultNotFound = errors.New("result not found")
	// ErrSubmitPending is returned when answers change while a submission is unfinished.
	ErrSubmitPending = errors.New("quiz submission pending, submit again to finish")
)
