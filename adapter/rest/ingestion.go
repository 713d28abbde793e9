package rest

import (
	"context"
	"fmt"
	"net/http"
)

type ingestionResponse struct {
	Success      bool `json:"success"`
	Verses       int  `json:"verses"`
	VerseBatches int  `json:"verse_batches"`
	Techniques   int  `json:"techniques"`
}

// Load the bulk datasets into the relational store
// (GET /data/ingestion)
func (a *Adapter) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ingestTimeout)
	defer cancel()

	result, err := a.prayerServer.RunIngestion(ctx)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error running ingestion")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error running ingestion"))
		return
	}

	renderJSON(w, ingestionResponse{
		Success:      true,
		Verses:       result.Verses,
		VerseBatches: result.VerseBatches,
		Techniques:   result.Techniques,
	})
}
