package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
	obsmw "github.com/jotishBolds/district-bi-sub001/internal/observability/middleware"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps domain failures to status codes. Anything unexpected
// becomes an opaque 500 with the detail kept in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrSelfDeactivation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserDisabled),
		errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		slog.Error("internal error",
			"error", err,
			"path", r.URL.Path,
			"request_id", obsmw.RequestIDFromContext(r.Context()),
			"trace_id", obsmw.TraceIDFromContext(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
