package usecase

import "errors"

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeLeadNotFound   = "LEAD_NOT_FOUND"
	CodeInvalidState   = "INVALID_STATE"
	CodeStorage        = "STORAGE_ERROR"
	CodeFileStore      = "FILE_STORE_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInvalidRequest = "INVALID_REQUEST"
)

// DomainError is a failure the caller can act on (unknown lead, illegal transition).
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a backend failure (database, disk). Message is safe to show;
// Err keeps the cause for logs.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func storageError(err error) error {
	return &TechnicalError{Code: CodeStorage, Message: "storage failure", Err: err}
}
