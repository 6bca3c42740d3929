package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bar-tpv/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a service error to an HTTP status. Not-found
// codes become 404, invalid transitions 409, bad input 400, anything
// unexpected 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeOrderNotFound, model.ErrCodeProductNotFound, model.ErrCodeLineItemNotFound:
		status = http.StatusNotFound
	case model.ErrCodeInvalidState:
		status = http.StatusConflict
	case model.ErrCodeInvalidPaymentMethod, model.ErrCodeInvalidTable:
		status = http.StatusBadRequest
	}

	logger.Warn().
		Str("code", domainErr.Code).
		Int("status", status).
		Msg(domainErr.Message)
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// pathID parses the named path wildcard as an int64 id.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
