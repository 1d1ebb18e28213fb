package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PabloPavan/varejao_api/internal/apperrors"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
)

const msgInternal = "erro interno do servidor"

// writeAppError maps err to a status code. Client errors carry their
// message; server errors are logged and answered with a generic body.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("unexpected error", err)
	}

	status := statusFromKind(appErr.Kind)
	if status >= http.StatusInternalServerError {
		telemetry.LogError(r.Context(), "request failed",
			telemetry.LogString("http.method", r.Method),
			telemetry.LogString("http.target", r.URL.Path),
			telemetry.LogErr(err),
		)
		writeJSON(w, status, ErrorResponse{Error: msgInternal})
		return
	}

	if appErr.Kind == apperrors.KindRateLimited && appErr.RetryAfter > 0 {
		seconds := int(appErr.RetryAfter.Seconds())
		if seconds <= 0 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	writeMessage(w, status, errorMessage(appErr))
}

// statusFromKind maps conflicts to 400: a duplicate email is reported as a
// bad request.
func statusFromKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidInput, apperrors.KindConflict:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(appErr *apperrors.Error) string {
	if appErr.Message != "" {
		return appErr.Message
	}
	switch appErr.Kind {
	case apperrors.KindUnauthorized:
		return "não autorizado"
	case apperrors.KindNotFound:
		return "não encontrado"
	case apperrors.KindConflict:
		return "conflito"
	case apperrors.KindRateLimited:
		return "muitas requisições"
	default:
		return "requisição inválida"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Message: msg})
}
