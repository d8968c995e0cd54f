// Package httperr defines the error taxonomy handlers raise and the single
// boundary translator that maps it onto HTTP responses. Handlers never map
// domain errors to status codes themselves.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a domain error.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindBadRequest
)

// Error is a domain error with an HTTP-mappable kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound reports that a referenced entity is absent.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Forbidden reports that the actor lacks authority for the operation.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// BadRequest reports missing input or an illegal state transition.
func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Msg: msg}
}

// Status returns the HTTP status for err. Errors outside the taxonomy
// (side-effect failures, database errors) map to 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			return http.StatusNotFound
		case KindForbidden:
			return http.StatusForbidden
		case KindBadRequest:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// Abort writes the JSON error response for err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(Status(err), gin.H{"error": err.Error()})
}
