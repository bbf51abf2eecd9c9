package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every handler returns. Data is an object,
// list or scalar on success and null on failure.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(body)
}

// WriteSuccess writes a 200 OK envelope with the given message and data
func WriteSuccess(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteCreated writes a 201 Created envelope
func WriteCreated(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteBadRequest writes a 400 Bad Request envelope
func WriteBadRequest(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Invalid request"
	}
	return WriteJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
	})
}

// WriteNotFound writes a 404 Not Found envelope
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, APIResponse{
		Success: false,
		Message: message,
	})
}

// WriteConflict writes a 409 Conflict envelope
func WriteConflict(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusConflict, APIResponse{
		Success: false,
		Message: message,
	})
}

// WriteInternalServerError writes a 500 Internal Server Error envelope.
// The message must never carry internal state; callers pass a generic
// description and log the underlying error themselves.
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: message,
	})
}

// WriteBadGateway writes a 502 Bad Gateway envelope for upstream failures
func WriteBadGateway(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Upstream dependency failed"
	}
	return WriteJSON(w, http.StatusBadGateway, APIResponse{
		Success: false,
		Message: message,
	})
}

// WriteError writes an error envelope with the given status code
func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, APIResponse{
		Success: false,
		Message: message,
	})
}
