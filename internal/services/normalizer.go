package services

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/charmap"
	encunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"hirelens/resume-parser/internal/models"
)

var (
	// ErrUnsupportedFormat means the declared format is not one we can read.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrCorruptDocument means the format was recognized but the content
	// could not be parsed into text.
	ErrCorruptDocument = errors.New("corrupt document")
)

type NormalizerService interface {
	// Normalize converts raw document bytes into a single UTF-8 text
	// stream with layout artifacts stripped.
	Normalize(data []byte, format models.DocumentFormat) (string, error)
}

type normalizerService struct{}

func NewNormalizerService() NormalizerService {
	return &normalizerService{}
}

func (n *normalizerService) Normalize(data []byte, format models.DocumentFormat) (string, error) {
	switch format {
	case models.FormatPDF:
		return n.normalizePDF(data)
	case models.FormatDOCX:
		return n.normalizeDOCX(data)
	case models.FormatTXT:
		return n.normalizeTXT(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (n *normalizerService) normalizeTXT(data []byte) (string, error) {
	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return cleanText(text), nil
}

func (n *normalizerService) normalizePDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: pdf reader panic: %v", ErrCorruptDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest in document order.
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text = cleanText(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", ErrCorruptDocument)
	}

	return text, nil
}

func (n *normalizerService) normalizeDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer doc.Close()

	text := cleanText(stripDocxMarkup(doc.Editable().GetContent()))
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in DOCX", ErrCorruptDocument)
	}

	return text, nil
}

var (
	docxBreakRe = regexp.MustCompile(`</w:p>|<w:br[^>]*/?>|<w:tab[^>]*/?>`)
	docxTagRe   = regexp.MustCompile(`<[^>]*>`)

	docxEntityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

// stripDocxMarkup turns the word/document.xml body into plain text, keeping
// paragraph boundaries as newlines.
func stripDocxMarkup(content string) string {
	content = docxBreakRe.ReplaceAllString(content, "\n")
	content = docxTagRe.ReplaceAllString(content, "")
	return docxEntityReplacer.Replace(content)
}

// decodeText detects the text encoding of a plain-text upload and returns
// UTF-8. UTF-8 and UTF-16 (by BOM) are handled directly; anything else falls
// back to Latin-1.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		decoder := encunicode.UTF16(encunicode.LittleEndian, encunicode.ExpectBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", fmt.Errorf("failed to decode UTF-16LE text: %v", err)
		}
		return string(decoded), nil
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		decoder := encunicode.UTF16(encunicode.BigEndian, encunicode.ExpectBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", fmt.Errorf("failed to decode UTF-16BE text: %v", err)
		}
		return string(decoded), nil
	case utf8.Valid(data):
		return string(data), nil
	default:
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("failed to decode Latin-1 text: %v", err)
		}
		return string(decoded), nil
	}
}

// cleanText normalizes line endings, trims each line, drops control
// characters and collapses runs of blank lines into one paragraph break.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	var cleanedLines []string
	blank := false

	for _, line := range lines {
		line = strings.TrimSpace(stripControlChars(line))
		if line == "" {
			blank = len(cleanedLines) > 0
			continue
		}
		if blank {
			cleanedLines = append(cleanedLines, "")
			blank = false
		}
		cleanedLines = append(cleanedLines, line)
	}

	return strings.Join(cleanedLines, "\n")
}

func stripControlChars(line string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, line)
}
