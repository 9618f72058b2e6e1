package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrQuizAnswersRequired = errors.New("quiz answers are required")
	ErrQuizResultNotFound  = errors.New("quiz result not found")

	ErrCollegeNotFound        = errors.New("college not found")
	ErrCourseNotFound         = errors.New("course not found")
	ErrInvalidUpload          = errors.New("invalid upload")
	ErrSemanticSearchDisabled = errors.New("semantic search is not configured")

	ErrMessageRequired        = errors.New("message is required")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from language model")
)

// detailedError keeps a sentinel for errors.Is while carrying the message
// shown to the client.
type detailedError struct {
	kind error
	msg  string
}

func (e *detailedError) Error() string { return e.msg }

func (e *detailedError) Unwrap() error { return e.kind }

// Detail wraps kind with a client-facing message.
func Detail(kind error, format string, args ...any) error {
	return &detailedError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
