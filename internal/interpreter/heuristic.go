package interpreter

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/nexus-ia/notion-automation/internal/models"
)

// HeuristicInterpreter maps text into a task without any network call:
// keyword and fuzzy matching for subject, type and priority, plus a few
// date patterns. It is the fallback when no LLM key is configured.
type HeuristicInterpreter struct {
	now func() time.Time
}

func NewHeuristicInterpreter() *HeuristicInterpreter {
	return &HeuristicInterpreter{now: time.Now}
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "for": true, "to": true,
	"in": true, "on": true, "at": true, "and": true, "or": true, "but": true,
	"is": true, "be": true, "it": true, "my": true, "i": true, "we": true,
	"have": true, "has": true, "with": true, "by": true, "from": true,
	"that": true, "this": true, "do": true, "must": true, "need": true,
}

// Ordered from specific to generic: "software architecture" must win over
// the bare "software" of Software Engineering.
var subjectKeywords = []struct {
	subject  string
	variants []string
}{
	{"Advanced Databases", []string{"database", "databases", "sql", "nosql", "postgres", "mongo", "queries"}},
	{"Networks and Communications", []string{"network", "networks", "networking", "tcp", "routing", "subnetting", "protocols"}},
	{"Software Architecture", []string{"architecture", "architectural", "microservices", "patterns", "distributed"}},
	{"Computer Security", []string{"security", "cryptography", "crypto", "pentesting", "firewall", "malware"}},
	{"Capstone Project", []string{"capstone", "thesis", "integrator"}},
	{"Software Engineering", []string{"software", "engineering", "requirements", "scrum", "agile", "uml"}},
}

var typeKeywords = []struct {
	taskType string
	variants []string
}{
	{"Exam", []string{"exam", "test", "quiz", "midterm", "final", "evaluation"}},
	{"Project", []string{"project", "paper", "research"}},
	{"Note", []string{"note", "notes", "summary"}},
	{"Resource", []string{"resource", "link", "reading"}},
	{"Activity", []string{"activity", "workshop", "lab", "practice"}},
	{"Homework", []string{"homework", "assignment", "deliverable", "exercise", "submit", "deliver"}},
}

var urgentWords = []string{"urgent", "important", "critical", "asap", "priority"}
var easyWords = []string{"easy", "simple", "chill", "relaxed", "effortless"}
var negationWords = map[string]bool{"no": true, "not": true, "never": true, "nothing": true, "nor": true}

const fuzzyThreshold = 0.75

func normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenize(text string) []string {
	return strings.Fields(normalize(text))
}

func removeStopwords(tokens []string) []string {
	clean := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stopwords[t] {
			clean = append(clean, t)
		}
	}
	return clean
}

// hasNegation reports whether a negation word appears within the window
// around the first occurrence of word.
func hasNegation(tokens []string, word string, window int) bool {
	idx := -1
	for i, t := range tokens {
		if t == word {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	start := max(0, idx-window)
	end := min(len(tokens), idx+window)
	for i := start; i < end; i++ {
		if negationWords[tokens[i]] {
			return true
		}
	}
	return false
}

// similarity is a levenshtein ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// fuzzyMatch finds the option most similar to the input, tolerating typos.
// Returns "" when nothing clears the threshold.
func fuzzyMatch(input string, options []string, threshold float64) string {
	best := ""
	bestScore := 0.0
	inputNorm := normalize(input)

	for _, option := range options {
		score := similarity(inputNorm, normalize(option))
		if score >= threshold && score > bestScore {
			best = option
			bestScore = score
		}
	}
	return best
}

func containsToken(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

func (h *HeuristicInterpreter) detectSubject(tokens []string) string {
	for _, entry := range subjectKeywords {
		for _, variant := range entry.variants {
			if containsToken(tokens, variant) {
				return entry.subject
			}
		}
	}

	// Fuzzy pass over every variant for typo tolerance.
	for _, token := range tokens {
		for _, entry := range subjectKeywords {
			if fuzzyMatch(token, entry.variants, fuzzyThreshold) != "" {
				return entry.subject
			}
		}
	}
	return models.DefaultSubject
}

func (h *HeuristicInterpreter) detectType(tokens []string) string {
	for _, entry := range typeKeywords {
		for _, variant := range entry.variants {
			if containsToken(tokens, variant) {
				return entry.taskType
			}
		}
	}

	for _, token := range tokens {
		for _, entry := range typeKeywords {
			if fuzzyMatch(token, entry.variants, fuzzyThreshold) != "" {
				return entry.taskType
			}
		}
	}
	return models.DefaultType
}

func (h *HeuristicInterpreter) detectPriority(tokens, cleanTokens []string) string {
	for _, word := range urgentWords {
		if containsToken(cleanTokens, word) && !hasNegation(tokens, word, 3) {
			return "High"
		}
	}
	for _, word := range easyWords {
		if containsToken(cleanTokens, word) {
			return "Low"
		}
	}
	return models.DefaultPriority
}

func capitalize(text string) string {
	r := []rune(text)
	if len(r) == 0 {
		return text
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (h *HeuristicInterpreter) Interpret(_ context.Context, text string) (models.Task, error) {
	title := strings.TrimSpace(text)
	if title == "" {
		return models.Task{}, &ParseError{Reason: "empty input"}
	}

	now := h.now()
	tokens := tokenize(text)
	cleanTokens := removeStopwords(tokens)

	dueDate := extractDueDate(text, now)
	if dueDate == nil {
		// An undated task defaults to tomorrow.
		tomorrow := now.AddDate(0, 0, 1)
		tomorrow = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 12, 0, 0, 0, time.UTC)
		dueDate = &tomorrow
	}

	return models.Task{
		Title:    capitalize(title),
		Subject:  h.detectSubject(cleanTokens),
		Type:     h.detectType(cleanTokens),
		Status:   models.DefaultStatus,
		Priority: h.detectPriority(tokens, cleanTokens),
		DueDate:  dueDate,
	}, nil
}
