package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper every handler replies with.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// SendEnvelope wraps data in the standard envelope. Success follows the status code.
func SendEnvelope(w http.ResponseWriter, statusCode int, data any, message string) {
	if data == nil {
		data = map[string]any{}
	}
	RespondWithJSON(w, statusCode, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	})
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	SendEnvelope(w, code, nil, msg)
}

type M map[string]interface{}
