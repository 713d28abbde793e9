package prayerserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const verseBatchSize = 1000

type IngestResult struct {
	Verses       int `json:"verses"`
	VerseBatches int `json:"verse_batches"`
	Techniques   int `json:"techniques"`
}

// RunIngestion loads the bulk Bible dataset and the therapy manual from their
// configured paths into the relational store. The two sources fail
// independently; an error from either aborts that source only.
func (ps *prayerServer) RunIngestion(ctx context.Context) (IngestResult, error) {
	var (
		result = IngestResult{}
		errs   []error
	)

	verses, batches, err := ps.IngestBibleData(ctx, ps.bibleDataPath)
	if err != nil {
		ps.logger.Sugar().With("error", err).Error("error ingesting bible data")
		errs = append(errs, fmt.Errorf("ingesting bible data: %w", err))
	} else {
		result.Verses = verses
		result.VerseBatches = batches
	}

	techniques, err := ps.IngestTherapyManual(ctx, ps.therapyManualPath)
	if err != nil {
		ps.logger.Sugar().With("error", err).Error("error ingesting therapy manual")
		errs = append(errs, fmt.Errorf("ingesting therapy manual: %w", err))
	} else {
		result.Techniques = techniques
	}

	return result, errors.Join(errs...)
}

// IngestBibleData reads the bulk verse dataset, derives verse records and
// bulk-inserts them in batches. Returns the number of rows inserted and the
// number of insert batches issued.
func (ps *prayerServer) IngestBibleData(ctx context.Context, path string) (int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("reading bible data: %w", err)
	}

	bible := BibleData{}
	if err := json.Unmarshal(data, &bible); err != nil {
		return 0, 0, fmt.Errorf("parsing bible data: %w", err)
	}

	var (
		now    = ps.now()
		verses = make([]*Verse, 0, len(bible.Verses))
	)
	for i, raw := range bible.Verses {
		verses = append(verses, NewVerse(raw, i, now))
	}

	total, batches := 0, 0
	for start := 0; start < len(verses); start += verseBatchSize {
		end := min(start+verseBatchSize, len(verses))
		if err := ps.store.SaveVerses(ctx, verses[start:end]...); err != nil {
			return total, batches, fmt.Errorf("saving verses batch %d: %w", batches+1, err)
		}
		total += end - start
		batches++
		ps.logger.Sugar().Infof("uploaded %d/%d verses", total, len(verses))
	}

	return total, batches, nil
}

// IngestTherapyManual extracts per-page text from the therapy manual and
// inserts one technique record per non-empty page in a single batch.
func (ps *prayerServer) IngestTherapyManual(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening therapy manual: %w", err)
	}
	defer f.Close()

	pages, err := ps.extractor.Extract(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("extracting therapy manual: %w", err)
	}

	var (
		now        = ps.now()
		techniques = make([]*Technique, 0, len(pages))
	)
	for i, page := range pages {
		techniques = append(techniques, NewTechnique(i+1, page, now))
	}

	if err := ps.store.SaveTechniques(ctx, techniques...); err != nil {
		return 0, fmt.Errorf("saving techniques: %w", err)
	}

	ps.logger.Sugar().Infof("uploaded %d techniques", len(techniques))

	return len(techniques), nil
}
