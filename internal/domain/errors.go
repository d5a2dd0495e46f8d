package domain

import "errors"

// ErrorKind classifies failures that are safe to show to a client.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindConflict       ErrorKind = "conflict"
	KindAuthentication ErrorKind = "authentication"
	KindNotFound       ErrorKind = "not_found"
	KindSelfFollow     ErrorKind = "self_follow"
)

// Error is a domain failure whose Message can be returned to the caller verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NewAuthenticationError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewSelfFollowError(msg string) *Error {
	return &Error{Kind: KindSelfFollow, Message: msg}
}

// InvalidTokenError is returned when a session token fails verification.
// It is an authentication failure and keeps the parser's reason for logging.
type InvalidTokenError struct {
	Reason error
}

func (e *InvalidTokenError) Error() string {
	return "Invalid token"
}

func (e *InvalidTokenError) Unwrap() error {
	return e.Reason
}

// KindOf reports the kind of a domain error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	var te *InvalidTokenError
	if errors.As(err, &te) {
		return KindAuthentication, true
	}
	return "", false
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
