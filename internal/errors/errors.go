package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func Validation(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func Unauthorized(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func AlreadyUsed(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func statusIs(err error, code int) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == code
}

func IsValidation(err error) bool {
	return statusIs(err, http.StatusBadRequest)
}

func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

func IsAlreadyUsed(err error) bool {
	return statusIs(err, http.StatusConflict)
}
