package constants

import "net/http"

// CodedError is an error that carries the HTTP status code the API layer
// should respond with.
type CodedError struct {
	message string
	code    int
}

func NewCodedError(message string, code int) *CodedError {
	return &CodedError{message: message, code: code}
}

func (e *CodedError) Error() string {
	return e.message
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound = NewCodedError("not found", http.StatusNotFound)

	ErrMissingOrganization = NewCodedError("empty organization id", http.StatusBadRequest)
	ErrMissingCampaign     = NewCodedError("empty campaign id", http.StatusBadRequest)
	ErrMissingMethod       = NewCodedError("empty method id", http.StatusBadRequest)
	ErrInvalidUUID         = NewCodedError("malformed uuid parameter", http.StatusBadRequest)
	ErrInvalidExportMode   = NewCodedError("unknown export mode", http.StatusBadRequest)
)
