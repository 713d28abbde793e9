package pdf

import (
	"context"
	"io"
	"strings"

	"github.com/graceware/prayerserver"
)

// Extract pulls text out of a PDF document page by page. Pages with no
// extractable text are skipped.
func (a *Adapter) Extract(ctx context.Context, contents io.ReadSeeker) ([]prayerserver.Page, error) {
	buffers, numPages, err := a.extractText(contents)
	if err != nil {
		return nil, err
	}

	pages := make([]prayerserver.Page, 0, len(buffers))
	for i, buf := range buffers {
		text := strings.TrimSpace(buf.String())
		if text == "" {
			continue
		}
		pages = append(pages, prayerserver.Page{
			Number: a.pageMin + i,
			Text:   text,
		})
	}

	a.logger.Sugar().With(
		"pages", numPages,
		"extracted", len(pages),
	).Info("extracted text from pdf")

	return pages, nil
}
