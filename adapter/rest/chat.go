package rest

import (
	"context"
	"fmt"
	"net/http"
)

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Generate a therapeutic chat response
// (POST /chat/generate_response)
func (a *Adapter) GenerateChatResponse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	apiRequest := chatRequest{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}
	if apiRequest.Prompt == "" {
		renderJSONError(w, http.StatusBadRequest, fmt.Errorf("prompt is required"))
		return
	}

	response, err := a.prayerServer.GenerateChatResponse(ctx, apiRequest.Prompt)
	if err != nil {
		a.logger.Sugar().With("error", err).Error("error generating chat response")
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error generating chat response"))
		return
	}

	renderJSON(w, chatResponse{
		Success:  true,
		Response: response,
	})
}
