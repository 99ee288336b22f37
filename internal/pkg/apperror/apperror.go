// Package apperror defines the error type services return to the HTTP layer.
// Carrying the status code on the error lets handlers stay a thin
// translate-and-respond layer with no per-error switch statements.
package apperror

// AppError pairs a user-facing message with the HTTP status it maps to.
// The wrapped error, when present, is for logs only and never reaches the
// client.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError with the given status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap builds an AppError around an underlying error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
