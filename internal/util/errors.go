package util

import "errors"

// Validation errors: the caller must fix its input.
var (
	ErrInvalidConfig         = errors.New("invalid test configuration")
	ErrInvalidAge            = errors.New("age must be between 10 and 100")
	ErrInvalidQuestion       = errors.New("correct answer index out of range")
	ErrInsufficientQuestions = errors.New("not enough questions match the requested filters")
)

// Not-found errors.
var (
	ErrSessionNotFound  = errors.New("test session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrResultNotFound   = errors.New("test result not found")
)

// State errors: the request is well-formed but illegal for the current
// session state.
var (
	ErrSessionCompleted = errors.New("test session already completed")
	ErrQuestionMismatch = errors.New("submitted question does not match current position")
	ErrDuplicateResult  = errors.New("result already recorded for this session")
)
