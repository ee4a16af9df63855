package entities

// Resource is a curated reference link for a drug
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CaseStudy is a published case study about a drug
type CaseStudy struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DrugRecord holds the side effects and curated references of a single drug.
// ID is the canonical lowercase identifier used for lookups and matching.
type DrugRecord struct {
	ID                string      `json:"-"`
	CommonSideEffects []string    `json:"common_side_effects"`
	SevereSideEffects []string    `json:"severe_side_effects"`
	Resources         []Resource  `json:"resources"`
	CaseStudies       []CaseStudy `json:"case_studies"`
}

// DrugInfo is a drug record as exposed to clients, with its display name.
// The record fields are flattened next to name when encoded.
type DrugInfo struct {
	Name string `json:"name"`
	DrugRecord
}

// DrugSummary is a drug list item
type DrugSummary struct {
	Name string `json:"name"`
}
