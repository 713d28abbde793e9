package googlegenai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/graceware/prayerserver"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 1024
)

func (a *Adapter) Generate(ctx context.Context, prompt prayerserver.Prompt) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](generationTemperature),
		MaxOutputTokens: generationMaxTokens,
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	a.logger.Sugar().With("model", a.generativeModel).Info("generating response")

	resp, err := a.client.Models.GenerateContent(ctx,
		a.generativeModel,
		genai.Text(prompt.User),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("calling generative model: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned by generative model")
	}

	return resp.Text(), nil
}
