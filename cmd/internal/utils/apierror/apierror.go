package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"meety/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to the transport layer. It is
// rendered as {"error": "..."} with Code() as the HTTP status.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	code    int
	Message string `json:"error"`
}

func (s *simpleError) Error() string {
	return s.Message
}

func (s *simpleError) Code() int {
	return s.code
}

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{code: code, Message: message}
}

var (
	MalformedBodyError       = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidStatusError       = NewSimple(http.StatusBadRequest, "Invalid meeting status")
	InvalidAuthTokenError    = NewSimple(http.StatusUnauthorized, "Invalid or missing authorization token")
	MeetingNotFoundError     = NewSimple(http.StatusNotFound, "Meeting not found")
	MeetingConflictError     = NewSimple(http.StatusConflict, "The requested time overlaps an approved meeting")
	InternalServerError      = NewSimple(http.StatusInternalServerError, "Internal server error")
	UpstreamUnavailableError = NewSimple(http.StatusServiceUnavailable, "Upstream service unavailable, try again later")
)

func NewMissingParamError(param string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", param))
}

func NewInvalidParamError(param, reason string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Invalid parameter %s: %s", param, reason))
}

// FromValidationError turns validator output into a single 400 message
// naming every failing field.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "isodate":
			msgs = append(msgs, fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field()))
		case "clock":
			msgs = append(msgs, fmt.Sprintf("%s must be a time like 09:30 or 9am", fe.Field()))
		case "meetingstatus":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), statusList()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return NewSimple(http.StatusBadRequest, strings.Join(msgs, "; "))
}

func statusList() string {
	names := make([]string, 0, len(entity.Statuses()))
	for _, st := range entity.Statuses() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
