package services

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// defaultSkills is the built-in vocabulary used when no lexicon file is
// configured. Multi-word entries are matched before their single-word
// prefixes.
var defaultSkills = []string{
	"machine learning", "deep learning", "natural language processing",
	"data analysis", "data science", "computer vision", "big data",
	"project management", "product management", "agile", "scrum",
	"python", "java", "javascript", "typescript", "golang", "go", "c++", "c#",
	"ruby", "php", "swift", "kotlin", "rust", "scala", "r", "matlab",
	"html", "css", "react", "angular", "vue", "node.js", "django", "flask",
	"spring", "rails", "sql", "mysql", "postgresql", "mongodb", "redis",
	"sqlite", "oracle", "elasticsearch", "kafka", "rabbitmq",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"linux", "git", "jenkins", "ci/cd", "rest", "graphql", "grpc",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "spark",
	"hadoop", "tableau", "power bi", "excel", "testing", "selenium",
	"communication", "leadership", "teamwork", "problem solving",
}

// SkillsLexicon is an immutable skills vocabulary. It is built once at
// startup and safe for concurrent reads.
type SkillsLexicon struct {
	entries []lexiconEntry
}

type lexiconEntry struct {
	canonical string
	words     []string
}

// NewSkillsLexicon normalizes and deduplicates the given entries, ordering
// them longest-match-first (word count, then length).
func NewSkillsLexicon(skills []string) *SkillsLexicon {
	seen := make(map[string]bool, len(skills))
	entries := make([]lexiconEntry, 0, len(skills))

	for _, skill := range skills {
		canonical := strings.ToLower(strings.TrimSpace(skill))
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		entries = append(entries, lexiconEntry{
			canonical: canonical,
			words:     tokenizeTerms(canonical),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].words) != len(entries[j].words) {
			return len(entries[i].words) > len(entries[j].words)
		}
		if len(entries[i].canonical) != len(entries[j].canonical) {
			return len(entries[i].canonical) > len(entries[j].canonical)
		}
		return entries[i].canonical < entries[j].canonical
	})

	return &SkillsLexicon{entries: entries}
}

// DefaultSkillsLexicon returns a lexicon over the built-in skill list.
func DefaultSkillsLexicon() *SkillsLexicon {
	return NewSkillsLexicon(defaultSkills)
}

// LoadSkillsLexicon reads a newline-separated skills file. Blank lines and
// lines starting with '#' are skipped.
func LoadSkillsLexicon(path string) (*SkillsLexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skills lexicon: %w", err)
	}
	defer file.Close()

	var skills []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		skills = append(skills, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skills lexicon: %w", err)
	}

	return NewSkillsLexicon(skills), nil
}

// Size returns the number of distinct lexicon entries.
func (l *SkillsLexicon) Size() int {
	return len(l.entries)
}

// Match intersects the given document tokens with the lexicon. Longer
// entries claim their tokens first, so "machine learning" suppresses a bare
// "machine" over the same span. The result is the sorted set of canonical
// lexicon entries found.
func (l *SkillsLexicon) Match(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	consumed := make([]bool, len(tokens))
	var found []string

	for _, entry := range l.entries {
		if len(entry.words) == 0 {
			continue
		}
		matched := false
		for i := 0; i+len(entry.words) <= len(tokens); i++ {
			if !matchesAt(tokens, consumed, entry.words, i) {
				continue
			}
			for j := range entry.words {
				consumed[i+j] = true
			}
			matched = true
		}
		if matched {
			found = append(found, entry.canonical)
		}
	}

	sort.Strings(found)
	return found
}

func matchesAt(tokens []string, consumed []bool, words []string, start int) bool {
	for j, word := range words {
		if consumed[start+j] || tokens[start+j] != word {
			return false
		}
	}
	return true
}
