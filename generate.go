package prayerserver

import (
	"context"
	"fmt"
	"strings"
)

// Prompt is a composed request for the generative model.
type Prompt struct {
	System string
	User   string
}

const noResponseMessage = "No response generated"

// GeneratePrayer retrieves verses relevant to the theme and asks the
// generative model for a prayer drawing on them.
func (ps *prayerServer) GeneratePrayer(ctx context.Context, theme string) (string, error) {
	verses, err := ps.SearchVerses(ctx, theme)
	if err != nil {
		return "", fmt.Errorf("retrieving verses: %w", err)
	}

	prompt := Prompt{
		System: prayerSystemPrompt,
		User:   fmt.Sprintf(prayerUserPromptTemplate, verses, theme),
	}

	ps.logger.Sugar().Infof("generating prayer for theme: %s", theme)

	text, err := ps.generative.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("calling generative model: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return noResponseMessage, nil
	}

	return text, nil
}

// GenerateChatResponse retrieves verse and technique passages, classifies the
// sentiment of the client message and asks the generative model for a
// therapeutic response tuned to the derived emotional context.
func (ps *prayerServer) GenerateChatResponse(ctx context.Context, message string) (string, error) {
	retrieved, err := ps.SearchAll(ctx, message)
	if err != nil {
		return "", fmt.Errorf("retrieving passages: %w", err)
	}

	sentiment, err := ps.classifier.Classify(ctx, message)
	if err != nil {
		return "", fmt.Errorf("classifying sentiment: %w", err)
	}

	emotionalContext := ClassifyEmotionalContext(sentiment)

	ps.logger.Sugar().Infof("sentiment: %s (%.2f), emotional context: %s", sentiment.Label, sentiment.Score, emotionalContext)

	user := fmt.Sprintf(chatUserPromptTemplate,
		message,
		emotionalContext,
		sentiment.Label,
		sentiment.Score*100,
		retrieved.Verses,
		retrieved.Techniques,
	)
	if emotionalContext.Crisis() {
		user += crisisInstruction
	}

	text, err := ps.generative.Generate(ctx, Prompt{System: chatSystemPrompt, User: user})
	if err != nil {
		return "", fmt.Errorf("calling generative model: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return noResponseMessage, nil
	}

	return text, nil
}
