package prayerserver

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

type Vector []float32

// RawVerse is a single row of the bulk Bible dataset.
type RawVerse struct {
	BookName   string `json:"book_name"`
	BookNumber int    `json:"book"`
	Chapter    int    `json:"chapter"`
	Verse      int    `json:"verse"`
	Text       string `json:"text"`
}

// BibleData is the JSON envelope of the bulk dataset file.
type BibleData struct {
	Verses []RawVerse `json:"verses"`
}

type Verse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Text        string    `json:"text"`
	BookName    string    `json:"book_name"`
	BookNumber  int       `json:"book_number"`
	Chapter     int       `json:"chapter"`
	VerseNumber int       `json:"verse"`
	TextLength  int       `json:"text_length"`
	EmbeddingID string    `json:"embedding_id"`
	Created     time.Time `json:"created_at"`
	Index       int       `json:"index"`
}

// VerseID derives the deterministic record identifier. It is reconstructible
// from (book, chapter, verse) and never random.
func VerseID(bookName string, chapter, verse int) string {
	book := strings.ReplaceAll(strings.ToLower(bookName), " ", "")
	return fmt.Sprintf("%s_%d_%d", book, chapter, verse)
}

// VerseReference derives the human readable reference, e.g. "John 3:16".
func VerseReference(bookName string, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", bookName, chapter, verse)
}

func NewVerse(raw RawVerse, index int, now time.Time) *Verse {
	id := VerseID(raw.BookName, raw.Chapter, raw.Verse)
	return &Verse{
		ID:          id,
		Reference:   VerseReference(raw.BookName, raw.Chapter, raw.Verse),
		Text:        raw.Text,
		BookName:    raw.BookName,
		BookNumber:  raw.BookNumber,
		Chapter:     raw.Chapter,
		VerseNumber: raw.Verse,
		TextLength:  len(raw.Text),
		EmbeddingID: id + "_vec",
		Created:     now,
		Index:       index,
	}
}

// CleanText strips punctuation before the text is sent to the embedding model.
func (v *Verse) CleanText() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, v.Text)
}

// VerseEmbedding is the denormalized vector store projection of a verse.
type VerseEmbedding struct {
	ID        string `json:"id"`
	Vector    Vector `json:"vector"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
	BookName  string `json:"book_name"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
}

func (v *Verse) Embedding(vector Vector) VerseEmbedding {
	return VerseEmbedding{
		ID:        v.ID,
		Vector:    vector,
		Text:      v.Text,
		Reference: v.Reference,
		BookName:  v.BookName,
		Chapter:   v.Chapter,
		Verse:     v.VerseNumber,
	}
}
