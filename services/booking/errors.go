package booking

import "fmt"

// Error codes, one per failure class the API distinguishes.
const (
	CodeAdmission  = "admissionError"  // blocked client, no booking created
	CodeValidation = "validationError" // malformed event facts
	CodeConflict   = "conflictError"   // transition not allowed from current state
	CodeBackend    = "backendError"    // persistence/transport failure, retryable
)

// BookingError carries a machine-readable code alongside the message.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAdmissionError(msg string) error {
	return &BookingError{Code: CodeAdmission, Message: msg}
}

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func NewConflictError(msg string) error {
	return &BookingError{Code: CodeConflict, Message: msg}
}

func NewBackendError(msg string) error {
	return &BookingError{Code: CodeBackend, Message: msg}
}

// CodeOf extracts the booking error code, or empty for foreign errors.
func CodeOf(err error) string {
	if be, ok := err.(*BookingError); ok {
		return be.Code
	}
	return ""
}
