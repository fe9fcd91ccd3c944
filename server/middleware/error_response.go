package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorResponseBody is the JSON shape of every API error.
type ErrorResponseBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteErrorResponse writes code and message as JSON with the given status.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{Error: code, Message: message})
}

// WriteInternalServerError hides the cause; callers log it.
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
