package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/benvon/bookmark-manager/internal/config"
	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

const (
	// OpenAPIJSONPath serves the document as JSON
	OpenAPIJSONPath = "/openapi.json"
	// OpenAPIYAMLPath serves the document as YAML
	OpenAPIYAMLPath = "/openapi.yaml"
)

// OpenAPIHandler handles OpenAPI specification requests.
// The document is parsed and rendered once; requests only copy bytes.
type OpenAPIHandler struct {
	jsonDoc []byte
	yamlDoc []byte
}

// NewOpenAPIHandler parses spec and stamps the metadata into its info block
func NewOpenAPIHandler(spec []byte, md config.Metadata) (*OpenAPIHandler, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI specification: %w", err)
	}
	if doc == nil {
		return nil, errors.New("OpenAPI specification is empty")
	}
	if _, ok := doc["openapi"]; !ok {
		return nil, errors.New("OpenAPI specification has no 'openapi' field")
	}

	info, _ := doc["info"].(map[string]any)
	if info == nil {
		info = make(map[string]any)
		doc["info"] = info
	}
	info["title"] = md.Title
	info["description"] = md.Description
	info["version"] = md.Version

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI specification as JSON: %w", err)
	}
	yamlDoc, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI specification as YAML: %w", err)
	}

	return &OpenAPIHandler{jsonDoc: jsonDoc, yamlDoc: yamlDoc}, nil
}

// RegisterRoutes registers OpenAPI routes
func (h *OpenAPIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc(OpenAPIJSONPath, h.ServeJSON).Methods("GET")
	r.HandleFunc(OpenAPIYAMLPath, h.ServeYAML).Methods("GET")
}

// JSON returns the rendered JSON document
func (h *OpenAPIHandler) JSON() []byte {
	return h.jsonDoc
}

// ServeYAML serves the OpenAPI spec in YAML format
func (h *OpenAPIHandler) ServeYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	_, _ = w.Write(h.yamlDoc)
}

// ServeJSON serves the OpenAPI spec in JSON format
func (h *OpenAPIHandler) ServeJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.jsonDoc)
}
