package rest

import (
	"context"
	"fmt"
	"net/http"
)

type prayerRequest struct {
	Prompt string `json:"prompt"`
}

type prayerResponse struct {
	Success bool   `json:"success"`
	Prayer  string `json:"prayer"`
}

// Generate a prayer grounded in retrieved verses
// (POST /prayer/generate_prayer)
func (a *Adapter) GeneratePrayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	apiRequest := prayerRequest{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}
	if apiRequest.Prompt == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("prompt is required"))
		return
	}

	prayer, err := a.prayerServer.GeneratePrayer(ctx, apiRequest.Prompt)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error generating prayer")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error generating prayer"))
		return
	}

	renderJSON(w, prayerResponse{
		Success: true,
		Prayer:  prayer,
	})
}
