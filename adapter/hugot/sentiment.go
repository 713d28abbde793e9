package hugot

import (
	"context"
	"fmt"
	"strings"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) Classify(ctx context.Context, content string) (prayerserver.Sentiment, error) {
	if a.sentiment == nil {
		return prayerserver.Sentiment{}, fmt.Errorf("sentiment pipeline not configured")
	}

	result, err := a.sentiment.RunPipeline([]string{content})
	if err != nil {
		return prayerserver.Sentiment{}, err
	}

	outputs := result.ClassificationOutputs
	if len(outputs) == 0 || len(outputs[0]) == 0 {
		return prayerserver.Sentiment{}, fmt.Errorf("empty classification result")
	}

	// Outputs are sorted by score, the first one is the predicted label.
	top := outputs[0][0]

	return prayerserver.Sentiment{
		Label: sentimentLabel(top.Label),
		Score: float64(top.Score),
	}, nil
}

func sentimentLabel(label string) prayerserver.SentimentLabel {
	switch strings.ToUpper(label) {
	case "POSITIVE", "LABEL_1":
		return prayerserver.SentimentPositive
	case "NEGATIVE", "LABEL_0":
		return prayerserver.SentimentNegative
	default:
		return prayerserver.SentimentNeutral
	}
}
