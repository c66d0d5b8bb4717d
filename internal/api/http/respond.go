package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Upstream causes and unclassified errors are
// logged but not echoed.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	detail := err.Error()

	var upstream *domain.UpstreamError
	switch {
	case errors.As(err, &upstream):
		logger.Error("Upstream failure", "op", upstream.Op, "error", upstream.Err)
		detail = upstream.Op + " failed: a dependent service is unavailable, please try again later"
	case status == http.StatusServiceUnavailable:
		logger.Error("Upstream failure", "error", err)
		detail = "a dependent service is unavailable, please try again later"
	case status == http.StatusInternalServerError:
		logger.Error("Unhandled error", "error", err)
		detail = "internal server error"
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("malformed JSON body: " + err.Error())
	}
	return nil
}

// callerUID returns the verified caller or ErrUnauthenticated.
func callerUID(r *http.Request) (string, error) {
	uid, ok := UIDFromContext(r.Context())
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return uid, nil
}
