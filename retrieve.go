package prayerserver

import (
	"context"
	"fmt"
	"strings"
)

const (
	verseSearchLimit = 5
	dualSearchLimit  = 10
)

// EmptyIndexMessage is returned instead of search results when a vector
// collection has not been populated yet.
const EmptyIndexMessage = "No embeddings found. Run the embedding setup before searching."

type RetrievalResult struct {
	Verses     string
	Techniques string
}

// SearchVerses embeds the query and returns the nearest verse passages
// formatted as "<reference>: <text>" blocks separated by blank lines.
func (ps *prayerServer) SearchVerses(ctx context.Context, query string) (string, error) {
	count, err := ps.retriever.CountVerseEmbeddings(ctx)
	if err != nil {
		return "", fmt.Errorf("counting verse embeddings: %w", err)
	}
	if count == 0 {
		return EmptyIndexMessage, nil
	}

	vector, err := ps.embedder.EmbedContent(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	matches, err := ps.retriever.SearchVerses(ctx, vector, verseSearchLimit)
	if err != nil {
		return "", fmt.Errorf("searching verses: %w", err)
	}

	ps.logger.Sugar().Infof("found %d verse matches", len(matches))

	return formatVerseMatches(matches), nil
}

// SearchAll runs independent nearest-neighbour searches against the verse and
// technique collections for the same query.
func (ps *prayerServer) SearchAll(ctx context.Context, query string) (RetrievalResult, error) {
	result := RetrievalResult{}

	verseCount, err := ps.retriever.CountVerseEmbeddings(ctx)
	if err != nil {
		return result, fmt.Errorf("counting verse embeddings: %w", err)
	}
	techniqueCount, err := ps.retriever.CountTechniqueEmbeddings(ctx)
	if err != nil {
		return result, fmt.Errorf("counting technique embeddings: %w", err)
	}
	if verseCount == 0 && techniqueCount == 0 {
		return RetrievalResult{Verses: EmptyIndexMessage, Techniques: EmptyIndexMessage}, nil
	}

	vector, err := ps.embedder.EmbedContent(ctx, query)
	if err != nil {
		return result, fmt.Errorf("embedding query: %w", err)
	}

	if verseCount == 0 {
		result.Verses = EmptyIndexMessage
	} else {
		matches, err := ps.retriever.SearchVerses(ctx, vector, dualSearchLimit)
		if err != nil {
			return result, fmt.Errorf("searching verses: %w", err)
		}
		result.Verses = formatVerseMatches(matches)
	}

	if techniqueCount == 0 {
		result.Techniques = EmptyIndexMessage
	} else {
		matches, err := ps.retriever.SearchTechniques(ctx, vector, dualSearchLimit)
		if err != nil {
			return result, fmt.Errorf("searching techniques: %w", err)
		}
		result.Techniques = formatTechniqueMatches(matches)
	}

	return result, nil
}

func formatVerseMatches(matches []VerseEmbedding) string {
	formatted := make([]string, 0, len(matches))
	for _, m := range matches {
		formatted = append(formatted, fmt.Sprintf("%s: %s", m.Reference, m.Text))
	}
	return strings.Join(formatted, "\n\n")
}

func formatTechniqueMatches(matches []TechniqueEmbedding) string {
	formatted := make([]string, 0, len(matches))
	for _, m := range matches {
		formatted = append(formatted, fmt.Sprintf("%s: %s", m.Title, m.Content))
	}
	return strings.Join(formatted, "\n\n")
}
