package controller

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/alliancehq/alliance-rag/appconfig"
	"github.com/alliancehq/alliance-rag/middleware"
	"github.com/alliancehq/alliance-rag/pinecone"
	"go.uber.org/zap"
)

// DocumentController lists and deletes the indexed source documents.
type DocumentController struct {
	index *pinecone.Client
}

func NewDocumentController(index *pinecone.Client) *DocumentController {
	return &DocumentController{index: index}
}

func ProvideDocumentController() *DocumentController {
	cfg := appconfig.Load()
	return NewDocumentController(pinecone.NewClient(pinecone.Config{
		Host:      cfg.PineconeIndexHost,
		APIKey:    os.Getenv("PINECONE_API_KEY"),
		Dimension: cfg.EmbeddingDimension,
	}))
}

// ListDocuments handles GET /documents, optionally filtered by ?property=.
func (dc *DocumentController) ListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := dc.index.ListDocuments(r.Context(), r.URL.Query().Get("property"))
	if err != nil {
		logger.Error("Failed to list documents", zap.Error(err))
		http.Error(w, "Failed to list documents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documents)
}

// DeleteDocument handles DELETE /documents/{name}: removes every vector of
// the named source document from the index.
func (dc *DocumentController) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		http.Error(w, "Document name is required", http.StatusBadRequest)
		return
	}

	if err := dc.index.DeleteDocument(r.Context(), name); err != nil {
		logger.Error("Failed to delete document", zap.String("name", name), zap.Error(err))
		http.Error(w, "Failed to delete document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Successfully deleted " + name})
}

func (dc *DocumentController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/documents",
			Method:  http.MethodGet,
			Handler: middleware.APIKeyAuthMiddleware(dc.ListDocuments),
		},
		{
			Pattern: "/documents/{name}",
			Method:  http.MethodDelete,
			Handler: middleware.APIKeyAuthMiddleware(dc.DeleteDocument),
		},
	}
}
