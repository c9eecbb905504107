package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDocumentHeadShortTextReturnedWhole(t *testing.T) {
	assert.Equal(t, "John Smith", documentHead("John Smith", 800))
}

func TestDocumentHeadCutsAtLineBoundary(t *testing.T) {
	text := "John Smith\n" + strings.Repeat("x", 900)

	assert.Equal(t, "John Smith", documentHead(text, 800))
}

func TestDocumentHeadNeverSplitsRunes(t *testing.T) {
	// Two-byte runes with no newline: an odd byte limit lands mid-rune and
	// must back off to the rune start rather than hand NER invalid UTF-8.
	text := strings.Repeat("é", 600)

	head := documentHead(text, 801)

	assert.True(t, utf8.ValidString(head))
	assert.Equal(t, 800, len(head))
}
