package prayerserver

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// Sentiment is the classifier output for a single utterance. It is computed
// per request and never persisted.
type Sentiment struct {
	Label SentimentLabel
	Score float64
}

// EmotionalContext is the coarse label derived from a sentiment result that
// steers the tone of the therapeutic response.
type EmotionalContext string

const (
	EmotionalContextCrisis     EmotionalContext = "experiencing significant distress and may be in crisis"
	EmotionalContextStruggling EmotionalContext = "struggling with difficult emotions"
	EmotionalContextHopeful    EmotionalContext = "in a positive, hopeful state of mind"
	EmotionalContextProcessing EmotionalContext = "processing their feelings and seeking guidance"
)

func (ec EmotionalContext) Crisis() bool {
	return ec == EmotionalContextCrisis
}

type contextRule struct {
	matches func(Sentiment) bool
	context EmotionalContext
}

// Rules are evaluated top to bottom, first match wins.
var contextRules = []contextRule{
	{
		matches: func(s Sentiment) bool { return s.Label == SentimentNegative && s.Score > 0.95 },
		context: EmotionalContextCrisis,
	},
	{
		matches: func(s Sentiment) bool { return s.Label == SentimentNegative && s.Score > 0.80 },
		context: EmotionalContextStruggling,
	},
	{
		matches: func(s Sentiment) bool { return s.Label == SentimentPositive && s.Score > 0.90 },
		context: EmotionalContextHopeful,
	},
}

// ClassifyEmotionalContext is a pure function of the sentiment result.
func ClassifyEmotionalContext(s Sentiment) EmotionalContext {
	for _, rule := range contextRules {
		if rule.matches(s) {
			return rule.context
		}
	}
	return EmotionalContextProcessing
}
