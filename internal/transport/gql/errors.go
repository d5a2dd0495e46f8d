package gql

import (
	"context"
	"errors"

	"github.com/neubri/threads-clone/internal/domain"
)

const internalMessage = "Something went wrong"

// Error is what a resolver failure becomes on the wire. It implements
// gqlerrors.ExtendedError so the code lands in "extensions".
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var kindCodes = map[domain.ErrorKind]string{
	domain.KindValidation:     "BAD_USER_INPUT",
	domain.KindConflict:       "CONFLICT",
	domain.KindAuthentication: "UNAUTHENTICATED",
	domain.KindNotFound:       "NOT_FOUND",
	domain.KindSelfFollow:     "SELF_FOLLOW",
}

// translate is the only place a service error turns into a client message.
// Domain errors pass through verbatim; everything else is logged and masked.
func (r *Resolver) translate(ctx context.Context, op string, err error) error {
	if kind, ok := domain.KindOf(err); ok {
		r.logger.WithContext(ctx).WithError(err).WithField("operation", op).Warn("operation rejected")
		return &Error{Message: publicMessage(err), Code: kindCodes[kind]}
	}

	r.logger.WithContext(ctx).WithError(err).WithField("operation", op).Error("operation failed")
	return &Error{Message: internalMessage, Code: "INTERNAL_SERVER_ERROR"}
}

func publicMessage(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Message
	}
	var te *domain.InvalidTokenError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}
