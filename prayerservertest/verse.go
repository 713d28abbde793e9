package prayerservertest

import (
	"time"

	"github.com/graceware/prayerserver"
)

type VerseOption func(*prayerserver.Verse)

func WithVerseBook(bookName string, bookNumber int) VerseOption {
	return func(v *prayerserver.Verse) {
		v.BookName = bookName
		v.BookNumber = bookNumber
		v.ID = prayerserver.VerseID(bookName, v.Chapter, v.VerseNumber)
		v.Reference = prayerserver.VerseReference(bookName, v.Chapter, v.VerseNumber)
		v.EmbeddingID = v.ID + "_vec"
	}
}

func WithVerseText(text string) VerseOption {
	return func(v *prayerserver.Verse) {
		v.Text = text
		v.TextLength = len(text)
	}
}

func WithVerseIndex(index int) VerseOption {
	return func(v *prayerserver.Verse) {
		v.Index = index
	}
}

func WithVerseCreated(created time.Time) VerseOption {
	return func(v *prayerserver.Verse) {
		v.Created = created
	}
}

var bookNames = []string{
	"Genesis",
	"Psalms",
	"Proverbs",
	"Isaiah",
	"Matthew",
	"John",
	"Romans",
	"Philippians",
	"1 John",
	"Revelation",
}

func (g *DataGen) RawVerse() prayerserver.RawVerse {
	g.ShuffleStrings(bookNames)

	return prayerserver.RawVerse{
		BookName:   bookNames[0],
		BookNumber: g.IntRange(1, 66),
		Chapter:    g.IntRange(1, 150),
		Verse:      g.IntRange(1, 176),
		Text:       g.Sentence(g.IntRange(5, 25)),
	}
}

func (g *DataGen) Verse(index int, options ...VerseOption) *prayerserver.Verse {
	aVerse := prayerserver.NewVerse(g.RawVerse(), index, g.now)

	for _, o := range options {
		o(aVerse)
	}

	return aVerse
}

func (g *DataGen) Vector(dim int) prayerserver.Vector {
	vector := make(prayerserver.Vector, dim)
	for i := range vector {
		vector[i] = g.Float32Range(-1, 1)
	}
	return vector
}
