package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) SaveVerseEmbeddings(ctx context.Context, embeddings []prayerserver.VerseEmbedding) error {
	for _, embedding := range embeddings {
		if len(embedding.Vector) != a.vectorDim {
			return fmt.Errorf("verse %s: expected vector of %d dimensions, got %d",
				embedding.ID, a.vectorDim, len(embedding.Vector))
		}
		key := a.verseIndexPrefix + embedding.ID
		fields, err := a.client.HSet(ctx,
			key,
			map[string]any{
				"text":      embedding.Text,
				"reference": embedding.Reference,
				"book_name": embedding.BookName,
				"chapter":   embedding.Chapter,
				"verse":     embedding.Verse,
				"embedding": floatsToBytes(embedding.Vector),
			},
		).Result()
		if err != nil {
			return err
		}
		if fields == 0 {
			return fmt.Errorf("no fields were added to redis")
		}
	}

	return nil
}

func (a *Adapter) CountVerseEmbeddings(ctx context.Context) (int, error) {
	return a.countIndexed(ctx, a.verseIndexName)
}

func (a *Adapter) SearchVerses(ctx context.Context, vector prayerserver.Vector, limit int) ([]prayerserver.VerseEmbedding, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required for searching verses")
	}

	query := fmt.Sprintf("*=>[KNN %d @embedding $vec AS vector_distance]", limit)

	// The results are ordered according to the value of the vector_distance
	// field, with the lowest distance indicating the greatest similarity.
	results, err := a.client.FTSearchWithArgs(ctx,
		a.verseIndexName,
		query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "vector_distance"},
				{FieldName: "text"},
				{FieldName: "reference"},
				{FieldName: "book_name"},
				{FieldName: "chapter"},
				{FieldName: "verse"},
			},
			DialectVersion: a.dialectVersion,
			Params: map[string]any{
				"vec": floatsToBytes(vector),
			},
			SortBy: []redis.FTSearchSortBy{{FieldName: "vector_distance", Asc: true}},
			Limit:  limit,
		},
	).Result()
	if err != nil {
		return nil, err
	}

	return mapRedisVerses(a.verseIndexPrefix, results.Docs)
}

func mapRedisVerses(prefix string, rds []redis.Document) ([]prayerserver.VerseEmbedding, error) {
	verses := make([]prayerserver.VerseEmbedding, 0, len(rds))

	for _, rd := range rds {
		aVerse, err := mapRedisVerse(prefix, rd)
		if err != nil {
			return nil, err
		}
		verses = append(verses, aVerse)
	}

	return verses, nil
}

func mapRedisVerse(prefix string, rd redis.Document) (prayerserver.VerseEmbedding, error) {
	text, ok := rd.Fields["text"]
	if !ok {
		return prayerserver.VerseEmbedding{}, fmt.Errorf("missing text field in verse")
	}
	reference, ok := rd.Fields["reference"]
	if !ok {
		return prayerserver.VerseEmbedding{}, fmt.Errorf("missing reference field in verse")
	}

	chapter, err := strconv.Atoi(rd.Fields["chapter"])
	if err != nil {
		return prayerserver.VerseEmbedding{}, fmt.Errorf("invalid chapter number: %v", err)
	}
	verse, err := strconv.Atoi(rd.Fields["verse"])
	if err != nil {
		return prayerserver.VerseEmbedding{}, fmt.Errorf("invalid verse number: %v", err)
	}

	return prayerserver.VerseEmbedding{
		ID:        rd.ID[len(prefix):],
		Text:      text,
		Reference: reference,
		BookName:  rd.Fields["book_name"],
		Chapter:   chapter,
		Verse:     verse,
	}, nil
}
