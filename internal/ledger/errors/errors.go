package errors

import "errors"

var (
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrEventAlreadyCompleted = errors.New("event already completed")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrInvalidMode       = NewValidationError("Mode must be 'personal' or 'business'")
	ErrInvalidType       = NewValidationError("Type must be 'income' or 'expense'")
	ErrInvalidRecurrence = NewValidationError("Recurrence must be 'once', 'monthly' or 'yearly'")
	ErrInvalidStatus     = NewValidationError("Status must be 'pending' or 'confirmed'")
	ErrNonPositiveValue  = NewValidationError("Value must be greater than zero")
)
