package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeInvalidProgress    = "INVALID_PROGRESS"
	ErrCodeOutOfOrderRating   = "OUT_OF_ORDER_RATING"
	ErrCodeSessionClosed      = "SESSION_CLOSED"
	ErrCodeUnknownQuestion    = "UNKNOWN_QUESTION"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "SESSION_CLOSED")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so callers can test with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInvalidRatingError reports a rating outside easy/hard/forgot.
// Caller contract violation, never retriable.
func NewInvalidRatingError(rating string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("invalid rating %q: must be easy, hard or forgot", rating),
		Status:  400,
	}
}

// NewInvalidProgressError reports progress counters that violate
// review_count == correct_count + wrong_count.
func NewInvalidProgressError(wordID int64, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidProgress,
		Message: fmt.Sprintf("inconsistent progress for word %d: %s", wordID, reason),
		Status:  500,
	}
}

// NewOutOfOrderRatingError reports a rating for a word other than the
// one at the session cursor.
func NewOutOfOrderRatingError(wordID int64) *AppError {
	return &AppError{
		Code:    ErrCodeOutOfOrderRating,
		Message: fmt.Sprintf("word %d is not the current word of the session", wordID),
		Status:  409,
	}
}

// NewSessionClosedError reports an operation on a completed session.
func NewSessionClosedError(sessionID string) *AppError {
	return &AppError{
		Code:    ErrCodeSessionClosed,
		Message: fmt.Sprintf("session %s is completed", sessionID),
		Status:  409,
	}
}

// NewUnknownQuestionError reports an answer referencing a question
// outside the question set.
func NewUnknownQuestionError(questionID int64) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownQuestion,
		Message: fmt.Sprintf("question %d is not part of this quiz", questionID),
		Status:  400,
	}
}

// NewPersistenceError wraps a progress-store failure. Retriable:
// re-issuing the same logical operation is safe.
func NewPersistenceError(err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistenceFailure,
		Message: "failed to persist progress",
		Status:  502,
		Err:     err,
	}
}
