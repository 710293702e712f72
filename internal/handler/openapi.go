package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/retshidi-radebe/bzfitness/internal/openapi"
)

// OpenAPIHandler serves the API description. The document is generated
// once when the handler is created.
type OpenAPIHandler struct {
	doc []byte
}

// NewOpenAPIHandler generates the document for the given build version.
func NewOpenAPIHandler(version string) (*OpenAPIHandler, error) {
	doc, err := openapi.Generate(version, "")
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &OpenAPIHandler{doc: data}, nil
}

// ServeSpec writes the OpenAPI 3 document.
// GET /openapi.json
func (h *OpenAPIHandler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.doc)
}
