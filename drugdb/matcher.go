package drugdb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/giygas/parkinsons-assistant/drugdb/entities"
)

// MatchMode selects how drug ids are searched for in free text
type MatchMode int

const (
	// MatchSubstring reports a drug whenever its id appears anywhere in the text
	MatchSubstring MatchMode = iota
	// MatchWordBoundary only reports ids that appear as whole words
	MatchWordBoundary
)

// ParseMatchMode converts a configuration value into a MatchMode
func ParseMatchMode(value string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "substring":
		return MatchSubstring, nil
	case "word", "word_boundary":
		return MatchWordBoundary, nil
	default:
		return MatchSubstring, fmt.Errorf("unknown match mode %q, expected substring or word", value)
	}
}

func (m MatchMode) String() string {
	if m == MatchWordBoundary {
		return "word"
	}
	return "substring"
}

// MatchedDrug is a drug found in a piece of text
type MatchedDrug struct {
	Record *entities.DrugRecord
}

// DisplayName returns the capitalized drug name
func (m MatchedDrug) DisplayName() string {
	return DisplayName(m.Record.ID)
}

// Matcher scans text for known drug ids
type Matcher struct {
	kb       *KnowledgeBase
	mode     MatchMode
	patterns []*regexp.Regexp // one per drug, only for MatchWordBoundary
}

// NewMatcher creates a matcher over the given knowledge base
func NewMatcher(kb *KnowledgeBase, mode MatchMode) *Matcher {
	m := &Matcher{kb: kb, mode: mode}

	if mode == MatchWordBoundary {
		m.patterns = make([]*regexp.Regexp, len(kb.drugs))
		for i, drug := range kb.drugs {
			m.patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(drug.ID) + `\b`)
		}
	}

	return m
}

// Mode returns the configured match mode
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// KnowledgeBase returns the knowledge base the matcher scans against
func (m *Matcher) KnowledgeBase() *KnowledgeBase {
	return m.kb
}

// FindMentions returns the ids of every drug mentioned in text, in
// knowledge base order. Each id appears at most once.
func (m *Matcher) FindMentions(text string) []string {
	matches := m.Match(text)
	ids := make([]string, len(matches))
	for i, match := range matches {
		ids[i] = match.Record.ID
	}
	return ids
}

// Match is FindMentions returning the matched records
func (m *Matcher) Match(text string) []MatchedDrug {
	if text == "" {
		return nil
	}

	lowered := strings.ToLower(text)
	var matches []MatchedDrug

	for i := range m.kb.drugs {
		if m.mentions(lowered, i) {
			matches = append(matches, MatchedDrug{Record: m.kb.record(i)})
		}
	}

	return matches
}

func (m *Matcher) mentions(lowered string, i int) bool {
	if m.mode == MatchWordBoundary {
		return m.patterns[i].MatchString(lowered)
	}
	return strings.Contains(lowered, m.kb.drugs[i].ID)
}
