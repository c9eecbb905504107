package services

import (
	"math"
	"regexp"
	"strings"
)

// MatcherService scores how well a resume matches a job description. The
// scorer is pure: every call builds its vocabulary from just the two
// documents being compared.
type MatcherService interface {
	// MatchScore returns a score in [0, 100] rounded to two decimals.
	// Identical non-empty documents score 100, documents with no shared
	// vocabulary (or an empty document) score 0.
	MatchScore(resumeText, jobDescription string) float64
}

type matcherService struct{}

func NewMatcherService() MatcherService {
	return &matcherService{}
}

func (m *matcherService) MatchScore(resumeText, jobDescription string) float64 {
	resumeTokens := tokenizeForScoring(resumeText)
	jobTokens := tokenizeForScoring(jobDescription)

	if len(resumeTokens) == 0 || len(jobTokens) == 0 {
		return 0
	}

	resumeTF := termFrequencies(resumeTokens)
	jobTF := termFrequencies(jobTokens)

	// Two-document corpus: df(t) is 1 or 2, idf(t) = ln((1+2)/(1+df)) + 1.
	// Terms shared by both documents still carry weight, just less of it.
	var dot, resumeNorm, jobNorm float64
	for term, rtf := range resumeTF {
		idf := inverseDocumentFrequency(term, resumeTF, jobTF)
		weight := rtf * idf
		resumeNorm += weight * weight
		if jtf, ok := jobTF[term]; ok {
			dot += weight * (jtf * idf)
		}
	}
	for term, jtf := range jobTF {
		idf := inverseDocumentFrequency(term, resumeTF, jobTF)
		weight := jtf * idf
		jobNorm += weight * weight
	}

	if resumeNorm == 0 || jobNorm == 0 {
		return 0
	}

	similarity := dot / (math.Sqrt(resumeNorm) * math.Sqrt(jobNorm))

	return math.Round(similarity*100*100) / 100
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	total := float64(len(tokens))
	for token := range tf {
		tf[token] /= total
	}
	return tf
}

func inverseDocumentFrequency(term string, a, b map[string]float64) float64 {
	df := 0.0
	if _, ok := a[term]; ok {
		df++
	}
	if _, ok := b[term]; ok {
		df++
	}
	return math.Log((1+2)/(1+df)) + 1
}

// nonTokenRe splits on anything that is not a letter, digit, '+' or '#'.
// The latter two are kept so language names like "c++" and "c#" survive
// tokenization.
var nonTokenRe = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)

// stopWords are dropped before scoring so boilerplate words do not inflate
// similarity.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "for": true,
	"from": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "i": true, "in": true, "is": true, "it": true, "its": true,
	"me": true, "my": true, "of": true, "on": true, "or": true, "our": true,
	"she": true, "that": true, "the": true, "their": true, "them": true,
	"they": true, "this": true, "to": true, "was": true, "we": true,
	"were": true, "will": true, "with": true, "you": true, "your": true,
}

// tokenize lowercases text and splits it into alphanumeric terms.
func tokenize(text string) []string {
	return nonTokenRe.Split(strings.ToLower(strings.TrimSpace(text)), -1)
}

// tokenizeTerms drops the empty terms Split leaves around leading or
// trailing punctuation, keeping everything else in document order.
func tokenizeTerms(text string) []string {
	var tokens []string
	for _, token := range tokenize(text) {
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// tokenizeForScoring additionally drops stop words and empty terms.
func tokenizeForScoring(text string) []string {
	var tokens []string
	for _, token := range tokenize(text) {
		if token == "" || stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
