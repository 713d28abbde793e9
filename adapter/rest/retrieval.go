package rest

import (
	"context"
	"fmt"
	"net/http"
)

type retrievalResponse struct {
	Success bool   `json:"success"`
	Verses  string `json:"verses"`
}

// Run the retrieval pipeline for a query
// (GET /rag/run?q=...)
func (a *Adapter) SearchVerses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ingestTimeout)
	defer cancel()

	query := r.URL.Query().Get("q")
	if query == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("missing q query parameter"))
		return
	}

	// Make sure the vector collections are populated before searching. Setup
	// is idempotent and short-circuits when embeddings already exist.
	if _, err := a.prayerServer.SetupEmbeddings(ctx, false); err != nil {
		a.logger.Sugar().With("error", err).Error("error setting up embeddings")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error setting up embeddings"))
		return
	}

	verses, err := a.prayerServer.SearchVerses(ctx, query)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error searching verses")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error searching verses"))
		return
	}

	renderJSON(w, retrievalResponse{
		Success: true,
		Verses:  verses,
	})
}
