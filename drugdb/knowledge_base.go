// Package drugdb provides the Parkinson's drug knowledge base and the matcher
// that detects which known drugs a piece of text refers to.
// The knowledge base is built once and never mutated, so it is safe for
// concurrent reads without locking.
package drugdb

import (
	"fmt"
	"strings"
	"sync"

	"github.com/giygas/parkinsons-assistant/drugdb/entities"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// KnowledgeBase is the immutable drug reference data
type KnowledgeBase struct {
	drugs   []entities.DrugRecord
	general []entities.Resource
}

// NewKnowledgeBase validates the dataset and builds a knowledge base from it.
// Ids must be non-empty, lowercase, trimmed and unique.
func NewKnowledgeBase(drugs []entities.DrugRecord, general []entities.Resource) (*KnowledgeBase, error) {
	seen := make(map[string]struct{}, len(drugs))

	for i, drug := range drugs {
		if drug.ID == "" {
			return nil, fmt.Errorf("drug at index %d has an empty id", i)
		}
		if drug.ID != Normalize(drug.ID) {
			return nil, fmt.Errorf("drug id %q is not in canonical lowercase form", drug.ID)
		}
		if _, exists := seen[drug.ID]; exists {
			return nil, fmt.Errorf("duplicate drug id %q", drug.ID)
		}
		seen[drug.ID] = struct{}{}
	}

	return &KnowledgeBase{
		drugs:   append([]entities.DrugRecord(nil), drugs...),
		general: append([]entities.Resource(nil), general...),
	}, nil
}

var defaultKnowledgeBase = sync.OnceValue(func() *KnowledgeBase {
	kb, err := NewKnowledgeBase(parkinsonsDrugs, generalResources)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in drug dataset: %v", err))
	}
	return kb
})

// Default returns the process-wide knowledge base built from the bundled dataset
func Default() *KnowledgeBase {
	return defaultKnowledgeBase()
}

// Normalize returns the canonical form used to compare drug names
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
}

// DisplayName returns the capitalized form of a canonical id
func DisplayName(id string) string {
	// cases.Caser is stateful, one per call
	return cases.Title(language.English).String(id)
}

// Lookup finds a drug by name. The name matches a record when, once normalized,
// it equals the id, is contained in the id, or contains the id.
// The first match in dataset order wins.
func (kb *KnowledgeBase) Lookup(name string) (entities.DrugRecord, bool) {
	normalized := Normalize(name)
	if normalized == "" {
		return entities.DrugRecord{}, false
	}

	for _, drug := range kb.drugs {
		if normalized == drug.ID ||
			strings.Contains(drug.ID, normalized) ||
			strings.Contains(normalized, drug.ID) {
			return drug, true
		}
	}

	return entities.DrugRecord{}, false
}

// AllDrugs returns every record in dataset order
func (kb *KnowledgeBase) AllDrugs() []entities.DrugRecord {
	return append([]entities.DrugRecord(nil), kb.drugs...)
}

// GeneralResources returns the links shown with every answer
func (kb *KnowledgeBase) GeneralResources() []entities.Resource {
	return append([]entities.Resource(nil), kb.general...)
}

// Len returns the number of drugs in the knowledge base
func (kb *KnowledgeBase) Len() int {
	return len(kb.drugs)
}

// record returns a pointer to the stored record at index i
func (kb *KnowledgeBase) record(i int) *entities.DrugRecord {
	return &kb.drugs[i]
}
