// Package enrichment appends curated reference links to generated answers.
// Drug mentions are resolved into structured sections first and rendered to
// markup only when the final answer is assembled.
package enrichment

import (
	"strings"
	"text/template"

	"github.com/giygas/parkinsons-assistant/drugdb"
	"github.com/giygas/parkinsons-assistant/logging"
)

const (
	// RelevantResourcesHeading titles the drug-specific section
	RelevantResourcesHeading = "📚 Relevant Resources:"
	// GeneralResourcesHeading titles the section appended to every answer
	GeneralResourcesHeading = "🌐 General Parkinson's Disease Resources:"

	relevantResourcesClass = "resources-section"
	generalResourcesClass  = "general-resources"

	caseStudyPrefix = "Case Study: "
)

// Link is a single rendered reference
type Link struct {
	Label string
	URL   string
}

// Section is a titled list of links
type Section struct {
	Class   string
	Heading string
	Links   []Link
}

// Sections only ever carry curated dataset text, which is emitted verbatim
var sectionsTemplate = template.Must(template.New("sections").Parse(
	`{{range .}}

<div class='{{.Class}}'>
<h3>{{.Heading}}</h3>
<ul>{{range .Links}}
<li><a href='{{.URL}}' target='_blank'>{{.Label}}</a></li>{{end}}
</ul>
</div>{{end}}`))

// Enricher builds resource sections from the drugs mentioned in a chat turn
type Enricher struct {
	matcher *drugdb.Matcher
}

// NewEnricher creates an enricher backed by the given matcher
func NewEnricher(matcher *drugdb.Matcher) *Enricher {
	return &Enricher{matcher: matcher}
}

// Mentions returns the drugs referenced by the turn. The user message is
// scanned first, then the answer; a drug found in both is kept once, at the
// position of its first occurrence.
func (e *Enricher) Mentions(rawAnswer, userMessage string) []drugdb.MatchedDrug {
	var mentions []drugdb.MatchedDrug
	seen := make(map[string]struct{})

	for _, text := range []string{userMessage, rawAnswer} {
		for _, match := range e.matcher.Match(text) {
			id := strings.ToLower(match.Record.ID)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			mentions = append(mentions, match)
		}
	}

	return mentions
}

// Sections returns the sections to append to the answer. The general
// resources section is always last and always present.
func (e *Enricher) Sections(rawAnswer, userMessage string) []Section {
	return e.SectionsFor(e.Mentions(rawAnswer, userMessage))
}

// SectionsFor builds the sections for mentions already computed by Mentions
func (e *Enricher) SectionsFor(mentions []drugdb.MatchedDrug) []Section {
	var sections []Section

	if len(mentions) > 0 {
		relevant := Section{Class: relevantResourcesClass, Heading: RelevantResourcesHeading}
		for _, mention := range mentions {
			for _, resource := range mention.Record.Resources {
				relevant.Links = append(relevant.Links, Link{Label: resource.Name, URL: resource.URL})
			}
			for _, caseStudy := range mention.Record.CaseStudies {
				relevant.Links = append(relevant.Links, Link{Label: caseStudyPrefix + caseStudy.Title, URL: caseStudy.URL})
			}
		}
		sections = append(sections, relevant)
	}

	general := Section{Class: generalResourcesClass, Heading: GeneralResourcesHeading}
	for _, resource := range e.matcher.KnowledgeBase().GeneralResources() {
		general.Links = append(general.Links, Link{Label: resource.Name, URL: resource.URL})
	}

	return append(sections, general)
}

// Enrich returns rawAnswer followed by the rendered resource sections
func (e *Enricher) Enrich(rawAnswer, userMessage string) string {
	return rawAnswer + Render(e.Sections(rawAnswer, userMessage))
}

// Render converts sections to the HTML fragment shown under an answer
func Render(sections []Section) string {
	var sb strings.Builder
	if err := sectionsTemplate.Execute(&sb, sections); err != nil {
		logging.Error("Failed to render resource sections", "error", err)
		return ""
	}
	return sb.String()
}
