package prayerservertest

import (
	"time"

	"github.com/graceware/prayerserver"
)

type TechniqueOption func(*prayerserver.Technique)

func WithTechniqueTitle(title string) TechniqueOption {
	return func(t *prayerserver.Technique) {
		t.Title = title
	}
}

func WithTechniqueContent(content string) TechniqueOption {
	return func(t *prayerserver.Technique) {
		t.Content = content
	}
}

func WithTechniqueCreated(created time.Time) TechniqueOption {
	return func(t *prayerserver.Technique) {
		t.Created = created
	}
}

func (g *DataGen) Technique(id int, options ...TechniqueOption) *prayerserver.Technique {
	page := prayerserver.Page{
		Number: id,
		Text:   g.HipsterSentence(3) + "\n" + g.HipsterParagraph(2, 4, 10, " "),
	}

	aTechnique := prayerserver.NewTechnique(id, page, g.now)

	for _, o := range options {
		o(aTechnique)
	}

	return aTechnique
}
