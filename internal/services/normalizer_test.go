package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/resume-parser/internal/models"
)

func TestNormalizeTXTPreservesContent(t *testing.T) {
	normalizer := NewNormalizerService()

	text, err := normalizer.Normalize([]byte("John Smith\njohn@example.com\nPython, Docker"), models.FormatTXT)

	require.NoError(t, err)
	assert.Equal(t, "John Smith\njohn@example.com\nPython, Docker", text)
}

func TestNormalizeTXTCleansLayout(t *testing.T) {
	normalizer := NewNormalizerService()

	raw := "  John Smith  \r\n\r\n\r\n\r\nSkills\tPython\r\n"
	text, err := normalizer.Normalize([]byte(raw), models.FormatTXT)

	require.NoError(t, err)
	// CRLF becomes LF, lines are trimmed, blank runs collapse to one break
	// and tabs become spaces.
	assert.Equal(t, "John Smith\n\nSkills Python", text)
}

func TestNormalizeTXTStripsUTF8BOM(t *testing.T) {
	normalizer := NewNormalizerService()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("John Smith")...)
	text, err := normalizer.Normalize(data, models.FormatTXT)

	require.NoError(t, err)
	assert.Equal(t, "John Smith", text)
}

func TestNormalizeTXTDecodesUTF16LE(t *testing.T) {
	normalizer := NewNormalizerService()

	data := []byte{0xFF, 0xFE} // BOM
	for _, r := range "John Smith" {
		data = append(data, byte(r), 0x00)
	}

	text, err := normalizer.Normalize(data, models.FormatTXT)

	require.NoError(t, err)
	assert.Equal(t, "John Smith", text)
}

func TestNormalizeTXTFallsBackToLatin1(t *testing.T) {
	normalizer := NewNormalizerService()

	// "résumé" in ISO-8859-1, invalid as UTF-8.
	data := []byte{0x72, 0xE9, 0x73, 0x75, 0x6D, 0xE9}
	text, err := normalizer.Normalize(data, models.FormatTXT)

	require.NoError(t, err)
	assert.Equal(t, "résumé", text)
}

func TestNormalizeUnsupportedFormat(t *testing.T) {
	normalizer := NewNormalizerService()

	_, err := normalizer.Normalize([]byte("content"), models.DocumentFormat("rtf"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// buildDOCX assembles a minimal OOXML archive: the document body plus the
// relationships part the reader requires.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}

	parts := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
			`<w:body>` + body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`</Relationships>`,
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range []string{"word/document.xml", "word/_rels/document.xml.rels"} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(parts[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// buildPDF assembles a single-page PDF with one text run. Object offsets in
// the xref table are computed while writing, so the fixture stays valid.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes()
}

func TestNormalizeDOCXRoundTrip(t *testing.T) {
	normalizer := NewNormalizerService()

	data := buildDOCX(t, "John Smith", "Skills", "Python, Docker")
	text, err := normalizer.Normalize(data, models.FormatDOCX)

	require.NoError(t, err)
	assert.Equal(t, "John Smith\nSkills\nPython, Docker", text)
}

func TestNormalizePDFRoundTrip(t *testing.T) {
	normalizer := NewNormalizerService()

	data := buildPDF(t, "John Smith")
	text, err := normalizer.Normalize(data, models.FormatPDF)

	require.NoError(t, err)
	assert.Contains(t, text, "John Smith")
}

func TestNormalizeCorruptPDF(t *testing.T) {
	normalizer := NewNormalizerService()

	text, err := normalizer.Normalize([]byte("this is not a pdf"), models.FormatPDF)

	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.Empty(t, text)
}

func TestNormalizeCorruptDOCX(t *testing.T) {
	normalizer := NewNormalizerService()

	text, err := normalizer.Normalize([]byte("this is not a zip archive"), models.FormatDOCX)

	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.Empty(t, text)
}

func TestStripDocxMarkup(t *testing.T) {
	content := `<w:p><w:r><w:t>John Smith</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Skills &amp; Tools</w:t></w:r></w:p>`

	assert.Equal(t, "John Smith\nSkills & Tools\n", stripDocxMarkup(content))
}

func TestCleanTextDropsControlChars(t *testing.T) {
	assert.Equal(t, "ab c", cleanText("a\x00b\tc"))
	assert.Equal(t, "", cleanText("\n\n\n"))
}

func TestNormalizeErrorsWrapSentinels(t *testing.T) {
	normalizer := NewNormalizerService()

	_, errFormat := normalizer.Normalize(nil, models.DocumentFormat("odt"))
	_, errCorrupt := normalizer.Normalize([]byte{0x01, 0x02}, models.FormatPDF)

	assert.True(t, errors.Is(errFormat, ErrUnsupportedFormat))
	assert.True(t, errors.Is(errCorrupt, ErrCorruptDocument))
	assert.False(t, errors.Is(errCorrupt, ErrUnsupportedFormat))
}
