package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail is the body of routing error responses
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// respondJSON sends data as the JSON response body
func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// respondDetail sends a {"detail": ...} error body
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, ErrorDetail{Detail: detail})
}

// NotFound answers requests that match no route
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondDetail(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed answers requests whose path matches a route registered for other methods
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
