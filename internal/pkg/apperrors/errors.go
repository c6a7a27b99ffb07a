package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrPayloadTooLarge  = errors.New("payload too large")
)

// Import errors
var (
	// ErrNoEntriesDetected means the parser recognized nothing in the document.
	ErrNoEntriesDetected = errors.New("no entries detected")
	// ErrDuplicateRecord means an identical schedule record already exists.
	ErrDuplicateRecord = errors.New("duplicate")
	// ErrImportInProgress means another run holds the import lock.
	ErrImportInProgress = errors.New("another import is in progress")
	// ErrUnknownFormat is returned for a forced grammar that does not exist.
	ErrUnknownFormat = errors.New("unknown document format")
	// ErrUnknownKind is returned for an import kind other than exam or session.
	ErrUnknownKind = errors.New("unknown import kind")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with a row-level message.
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
