package api

import (
	"context"
	"errors"
	"net/http"

	"sqlsplit/internal/domain"
)

// errorBody is the JSON shape of every error response. Line and Column are
// set for SQL syntax errors only.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var parse *domain.ParseError
	var depth *domain.DepthError
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	var unavailable *domain.UnavailableError
	var execution *domain.ExecutionError

	switch {
	case errors.As(err, &parse), errors.As(err, &depth), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &execution):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorBodyFromError builds the response body for err. Internal errors do not
// leak their text.
func errorBodyFromError(err error) errorBody {
	status := httpStatusFromDomainError(err)
	body := errorBody{Code: status, Message: err.Error()}
	if status == http.StatusInternalServerError {
		body.Message = "internal server error"
	}
	var parse *domain.ParseError
	if errors.As(err, &parse) {
		body.Message = parse.Message
		body.Line = parse.Line
		body.Column = parse.Column
	}
	return body
}
