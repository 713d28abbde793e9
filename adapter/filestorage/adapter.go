package filestorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/graceware/prayerserver"
)

// Adapter caches computed embedding sets as JSON files on disk so that a
// setup rerun does not have to invoke the embedding model again.
type Adapter struct {
	dir    string
	logger *zap.Logger
}

type Option func(*Adapter)

func WithDir(dir string) Option {
	return func(a *Adapter) {
		a.dir = dir
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	verseEmbeddingsFile     = "verse_embeddings.json"
	techniqueEmbeddingsFile = "technique_embeddings.json"
)

func New(opts ...Option) (*Adapter, error) {
	a := &Adapter{
		dir:    os.TempDir(),
		logger: zap.NewNop(),
	}

	for _, o := range opts {
		o(a)
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return nil, err
	}

	a.logger.Sugar().With(
		"directory", a.dir,
	).Info("init filestorage adapter")

	return a, nil
}

func (a *Adapter) LoadVerseEmbeddings(ctx context.Context, sourceCount int) ([]prayerserver.VerseEmbedding, bool, error) {
	var embeddings []prayerserver.VerseEmbedding
	ok, err := a.load(verseEmbeddingsFile, &embeddings)
	if err != nil || !ok {
		return nil, false, err
	}

	// A cached set is only valid if it covers the current source rows exactly.
	if len(embeddings) != sourceCount {
		a.logger.Sugar().With(
			"cached", len(embeddings),
			"source", sourceCount,
		).Info("verse embedding cache count mismatch, ignoring")
		return nil, false, nil
	}

	return embeddings, true, nil
}

func (a *Adapter) SaveVerseEmbeddings(ctx context.Context, embeddings []prayerserver.VerseEmbedding) error {
	return a.save(verseEmbeddingsFile, embeddings)
}

func (a *Adapter) LoadTechniqueEmbeddings(ctx context.Context, sourceCount int) ([]prayerserver.TechniqueEmbedding, bool, error) {
	var embeddings []prayerserver.TechniqueEmbedding
	ok, err := a.load(techniqueEmbeddingsFile, &embeddings)
	if err != nil || !ok {
		return nil, false, err
	}

	if len(embeddings) != sourceCount {
		a.logger.Sugar().With(
			"cached", len(embeddings),
			"source", sourceCount,
		).Info("technique embedding cache count mismatch, ignoring")
		return nil, false, nil
	}

	return embeddings, true, nil
}

func (a *Adapter) SaveTechniqueEmbeddings(ctx context.Context, embeddings []prayerserver.TechniqueEmbedding) error {
	return a.save(techniqueEmbeddingsFile, embeddings)
}

func (a *Adapter) load(filename string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(a.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("corrupt embedding cache %s: %w", filename, err)
	}

	return true, nil
}

func (a *Adapter) save(filename string, embeddings any) error {
	data, err := json.Marshal(embeddings)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(a.dir, filename))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}
