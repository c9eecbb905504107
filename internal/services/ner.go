package services

import (
	"strings"
	"unicode/utf8"

	prose "github.com/jdkato/prose/v2"
)

// NameModel recognizes a person-name span in resume text. Implementations
// must be safe for concurrent use after construction.
type NameModel interface {
	PersonName(text string) (string, bool)
}

type proseNameModel struct{}

// NewProseNameModel returns a NameModel backed by the prose NER tagger.
func NewProseNameModel() NameModel {
	return &proseNameModel{}
}

// PersonName returns the first PERSON entity near the document start.
func (m *proseNameModel) PersonName(text string) (string, bool) {
	head := documentHead(text, 800)
	if head == "" {
		return "", false
	}

	doc, err := prose.NewDocument(head)
	if err != nil {
		return "", false
	}

	for _, ent := range doc.Entities() {
		if ent.Label != "PERSON" {
			continue
		}
		name := strings.TrimSpace(ent.Text)
		if name != "" {
			return name, true
		}
	}

	return "", false
}

// documentHead returns at most limit bytes of text, never splitting a rune,
// cut at a line boundary when possible. Names live at the top of a resume;
// running NER over the whole document only adds false positives from
// employer and school names.
func documentHead(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	head := text[:cut]
	if idx := strings.LastIndexByte(head, '\n'); idx > 0 {
		head = head[:idx]
	}
	return head
}
