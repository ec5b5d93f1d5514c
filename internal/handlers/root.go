package handlers

import "net/http"

// RootMessage is returned by GET /
const RootMessage = "Bookmark Manager API is running!"

// RootResponse represents the root endpoint response
type RootResponse struct {
	Message string `json:"message"`
}

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RootResponse{Message: RootMessage})
}
