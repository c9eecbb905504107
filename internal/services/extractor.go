package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"hirelens/resume-parser/internal/models"
)

// ExtractorService populates a CandidateRecord from normalized resume text.
// The five recognizers are independent: each owns one field, and a
// recognizer that finds nothing leaves its field marked absent without
// affecting the others.
type ExtractorService interface {
	Extract(text string) models.CandidateRecord
}

type extractorService struct {
	lexicon   *SkillsLexicon
	nameModel NameModel
	now       func() time.Time
}

// NewExtractorService builds an extractor over the given skills lexicon and
// an optional person-name model. Both are read-only after construction and
// shared across concurrent extractions.
func NewExtractorService(lexicon *SkillsLexicon, nameModel NameModel) ExtractorService {
	return &extractorService{
		lexicon:   lexicon,
		nameModel: nameModel,
		now:       time.Now,
	}
}

func (e *extractorService) Extract(text string) models.CandidateRecord {
	record := models.NewCandidateRecord()
	lines := strings.Split(text, "\n")

	var wg sync.WaitGroup
	run := func(recognize func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A recognizer that chokes on its slice of the text must not
			// take the siblings down; its field simply stays absent.
			defer func() { _ = recover() }()
			recognize()
		}()
	}

	run(func() {
		email, phone := recognizeContact(text)
		if email != "" {
			record.Email = email
		}
		if phone != "" {
			record.Phone = phone
		}
	})
	run(func() {
		if name, ok := e.recognizeName(text, lines); ok {
			record.Name = name
		}
	})
	run(func() {
		record.Skills = e.lexicon.Match(tokenizeTerms(text))
	})
	run(func() {
		record.Education = sectionLines(lines, sectionEducation)
	})
	run(func() {
		if years, ok := e.recognizeExperience(lines); ok {
			record.ExperienceYears = years
			record.HasExperience = true
		}
	})

	wg.Wait()
	return record
}

// --- Contact recognizer ---

var (
	emailRe          = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneCandidateRe = regexp.MustCompile(`\+?\(?\d[\d\s\-()./]{5,18}\d`)
	yearRangeRe      = regexp.MustCompile(`^(19|20)\d{2}\s*[-–—]\s*(19|20)\d{2}$`)
)

// recognizeContact finds the first email address and the first plausible
// phone number (7-15 digits with optional separators). Bare year ranges
// such as "2019 - 2020" look like phone numbers to the pattern and are
// skipped explicitly.
func recognizeContact(text string) (string, string) {
	email := emailRe.FindString(text)

	var phone string
	for _, candidate := range phoneCandidateRe.FindAllString(text, -1) {
		candidate = strings.TrimSpace(candidate)
		if yearRangeRe.MatchString(candidate) {
			continue
		}
		if digits := countDigits(candidate); digits >= 7 && digits <= 15 {
			phone = candidate
			break
		}
	}

	return email, phone
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// --- Name recognizer ---

// recognizeName consults the NER model when one is configured and falls
// back to the positional heuristic: the first capitalized 2-4 word line
// near the top of the document.
func (e *extractorService) recognizeName(text string, lines []string) (string, bool) {
	if e.nameModel != nil {
		if name, ok := e.nameModel.PersonName(text); ok {
			return name, true
		}
	}

	inspected := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		inspected++
		if inspected > 10 {
			break
		}
		if looksLikeName(line) {
			return line, true
		}
	}

	return "", false
}

func looksLikeName(line string) bool {
	if len(line) > 40 || strings.ContainsAny(line, "@0123456789") {
		return false
	}
	if _, isHeading := sectionKind(line); isHeading {
		return false
	}

	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, word := range words {
		runes := []rune(strings.Trim(word, ",."))
		if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
			return false
		}
	}

	return true
}

// --- Section boundaries (shared by education and experience) ---

const (
	sectionEducation  = "education"
	sectionExperience = "experience"
)

// sectionHeadings maps normalized heading lines to a section kind. Resume
// layout has no grammar; this keyword set is best-effort.
var sectionHeadings = map[string]string{
	"education":               sectionEducation,
	"academic background":     sectionEducation,
	"academics":               sectionEducation,
	"academic qualifications": sectionEducation,
	"qualifications":          sectionEducation,

	"experience":              sectionExperience,
	"work experience":         sectionExperience,
	"professional experience": sectionExperience,
	"employment":              sectionExperience,
	"employment history":      sectionExperience,
	"work history":            sectionExperience,
	"career history":          sectionExperience,
	"internships":             sectionExperience,

	"skills":               "skills",
	"technical skills":     "skills",
	"key skills":           "skills",
	"projects":             "projects",
	"personal projects":    "projects",
	"summary":              "summary",
	"professional summary": "summary",
	"objective":            "summary",
	"profile":              "summary",
	"certifications":       "certifications",
	"certificates":         "certifications",
	"awards":               "awards",
	"achievements":         "awards",
	"languages":            "languages",
	"interests":            "interests",
	"hobbies":              "interests",
	"publications":         "publications",
	"references":           "references",
	"contact":              "contact",
	"contact information":  "contact",
}

func sectionKind(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 40 {
		return "", false
	}
	normalized := strings.ToLower(strings.Trim(trimmed, " \t:-–—"))
	kind, ok := sectionHeadings[normalized]
	return kind, ok
}

// sectionLines returns the non-empty lines following the first heading of
// the given kind, up to the next recognized heading or end of document.
func sectionLines(lines []string, kind string) []string {
	var collected []string
	inSection := false

	for _, line := range lines {
		if k, ok := sectionKind(line); ok {
			if inSection {
				break
			}
			inSection = k == kind
			continue
		}
		if !inSection {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			collected = append(collected, trimmed)
		}
	}

	return collected
}

// --- Experience recognizer ---

var dateRangeRe = regexp.MustCompile(
	`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s*` +
		`(\d{4})\s*(?:-|–|—|to|until)\s*` +
		`(?:(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s*(\d{4})|present|current|now)`)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// recognizeExperience sums the month/year date ranges found inside
// employment-like sections. Overlapping ranges are unioned on a month grid
// so concurrent positions are never double-counted. Open-ended ranges
// ("present") close at the current month.
func (e *extractorService) recognizeExperience(lines []string) (float64, bool) {
	section := strings.Join(sectionLines(lines, sectionExperience), "\n")
	matches := dateRangeRe.FindAllStringSubmatch(section, -1)
	if len(matches) == 0 {
		return 0, false
	}

	now := e.now()
	currentMonth := monthOrdinalOf(now.Year(), int(now.Month()))

	type span struct{ start, end int }
	var spans []span
	for _, m := range matches {
		start := monthOrdinal(m[1], m[2])
		end := currentMonth
		if m[3] != "" && m[4] != "" {
			end = monthOrdinal(m[3], m[4])
		}
		if start < 0 || end < start {
			continue
		}
		spans = append(spans, span{start: start, end: end})
	}
	if len(spans) == 0 {
		return 0, false
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	// Months are counted inclusively: Jan 2019 - Dec 2020 is 24 months.
	months := 0
	current := spans[0]
	for _, s := range spans[1:] {
		if s.start <= current.end+1 {
			if s.end > current.end {
				current.end = s.end
			}
			continue
		}
		months += current.end - current.start + 1
		current = s
	}
	months += current.end - current.start + 1

	return math.Round(float64(months)/12*10) / 10, true
}

func monthOrdinal(month, year string) int {
	m, ok := monthIndex[strings.ToLower(month)]
	if !ok {
		return -1
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return -1
	}
	return monthOrdinalOf(y, m)
}

func monthOrdinalOf(year, month int) int {
	return year*12 + month - 1
}
