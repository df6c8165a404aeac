package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Error codes returned in the JSON envelope.
const (
	ErrInvalidRequest   = "VAL_001"
	ErrInvalidFormat    = "VAL_002"
	ErrNotFound         = "RES_001"
	ErrUnknownEntity    = "RES_002"
	ErrMethodNotAllowed = "RES_003"
	ErrInternalServer   = "SRV_001"
)

var httpStatusMap = map[string]int{
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrInvalidFormat:    http.StatusBadRequest,
	ErrNotFound:         http.StatusNotFound,
	ErrUnknownEntity:    http.StatusNotFound,
	ErrMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrInternalServer:   http.StatusInternalServerError,
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e APIError) Error() string {
	return e.Code + ": " + e.Message
}

// WriteError writes the envelope with the status mapped from code. Unknown codes map to 500.
func WriteError(w http.ResponseWriter, code, message string) {
	status, ok := httpStatusMap[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, APIError{Code: code, Message: message})
}

// writeJSON encodes v before touching the response, so an unencodable payload becomes a 500
// envelope instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(APIError{Code: ErrInternalServer, Message: "response could not be encoded"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Debug().Err(err).Msg("Failed to write response")
	}
}
