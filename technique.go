package prayerserver

import (
	"strings"
	"time"
	"unicode"
)

// Page is one page of extracted document text.
type Page struct {
	Number int
	Text   string
}

// Technique is a single therapy technique extracted from one page of the
// therapy manual.
type Technique struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Page    int       `json:"page"`
	Created time.Time `json:"created_at"`
}

func NewTechnique(id int, page Page, now time.Time) *Technique {
	return &Technique{
		ID:      id,
		Title:   slugify(firstLine(page.Text)),
		Content: page.Text,
		Page:    page.Number,
		Created: now,
	}
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	return strings.TrimSpace(line)
}

// slugify normalizes a title to lowercase words joined by hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// TechniqueEmbedding is the denormalized vector store projection of a technique.
type TechniqueEmbedding struct {
	ID      int    `json:"id"`
	Vector  Vector `json:"vector"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Page    int    `json:"page"`
}

func (t *Technique) Embedding(vector Vector) TechniqueEmbedding {
	return TechniqueEmbedding{
		ID:      t.ID,
		Vector:  vector,
		Title:   t.Title,
		Content: t.Content,
		Page:    t.Page,
	}
}
