package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mealdrop/mealdrop/models"
)

// WriteData serializes the given payload into the API success envelope
// {"data": ...} and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteData(w, payload, http.StatusOK)
func WriteData(w http.ResponseWriter, data any, statusCode int) (int, error) {
	return writeJSON(w, models.DataResponse{Data: data}, statusCode)
}

// WriteError serializes the given message and detail strings into the API
// failure envelope {"message": ..., "errors": [...]} and writes it to the
// HTTP response with the provided status code.
//
// Example usage:
//
//	WriteError(w, "wrong password provided", http.StatusUnauthorized)
func WriteError(w http.ResponseWriter, message string, statusCode int, errs ...string) (int, error) {
	if errs == nil {
		errs = []string{}
	}
	return writeJSON(w, models.ErrorResponse{Message: message, Errors: errs}, statusCode)
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
