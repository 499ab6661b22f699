package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// Public error codes.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL"
)

// requestError is raised by the transport itself (bad JSON, bad query string, absent resources).
type requestError struct {
	status  int
	code    string
	message string
	details any
}

func (e *requestError) Error() string { return e.message }

func invalidRequest(message string, details any) error {
	return &requestError{status: http.StatusBadRequest, code: CodeInvalidArgument, message: message, details: details}
}

func notFound(message string) error {
	return &requestError{status: http.StatusNotFound, code: CodeNotFound, message: message}
}

// mapError maps an error to an HTTP status and public error body.
func mapError(err error) (int, APIError) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.status, APIError{Code: reqErr.code, Message: reqErr.message, Details: reqErr.details}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest, APIError{Code: CodeInvalidArgument, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, APIError{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, APIError{Code: CodeAlreadyExists, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, APIError{Code: CodeConflict, Message: err.Error()}
	default:
		return http.StatusInternalServerError, APIError{Code: CodeInternal, Message: "internal server error"}
	}
}

func writeError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	status, body := mapError(err)

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"status": status, "error_code": body.Code})
		if status >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected", err)
		}
	}

	writeJSON(w, status, ErrorEnvelope{Error: body})
}
