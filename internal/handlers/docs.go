package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggest/swgui/v5emb"
)

// DocsPath is where the interactive documentation lives
const DocsPath = "/docs"

// NewDocsHandler returns a Swagger UI, with assets embedded in the binary,
// that loads the document from specURL.
func NewDocsHandler(title, specURL string) http.Handler {
	return v5emb.New(title+" - Swagger UI", specURL, DocsPath+"/")
}

// RegisterDocsRoutes mounts the docs UI at /docs and its assets below /docs/
func RegisterDocsRoutes(r *mux.Router, docs http.Handler) {
	r.Handle(DocsPath, docs).Methods("GET")
	r.PathPrefix(DocsPath + "/").Handler(docs).Methods("GET")
}
