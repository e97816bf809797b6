package failure

import (
	"errors"
	"net/http"
)

// Failure carries the HTTP status an error should be reported with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

// NotFound returns a 404 with msg, e.g. "booking not found".
func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

// Conflict is used for illegal state transitions and lost races.
func Conflict(msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg}
}

// InternalError wraps err as a 500. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusInternalServerError, Message: err.Error()}
}

func Unimplemented(methodName string) error {
	return &Failure{Code: http.StatusNotImplemented, Message: methodName}
}

// GetCode returns the status carried by err, 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsCode reports whether err carries the given status.
func IsCode(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
