package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"tableside/internal/apperr"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// WriteData writes a success envelope with a payload
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// WriteMessage writes a success envelope with only a message
func WriteMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// WriteFailure writes a failure envelope with the given status
func WriteFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// WriteError maps an error to the failure envelope: NotFound to 404,
// validation to 400, anything else to a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		WriteFailure(w, http.StatusNotFound, err.Error())
	case apperr.IsValidation(err), errors.Is(err, apperr.ErrAlreadyExists):
		WriteFailure(w, http.StatusBadRequest, err.Error())
	default:
		WriteFailure(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
