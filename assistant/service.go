// Package assistant composes the completion client, the enricher and the
// conversation store into the operations served over HTTP.
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/giygas/parkinsons-assistant/drugdb"
	"github.com/giygas/parkinsons-assistant/drugdb/entities"
	"github.com/giygas/parkinsons-assistant/enrichment"
	"github.com/giygas/parkinsons-assistant/interfaces"
	"github.com/giygas/parkinsons-assistant/logging"
	"github.com/giygas/parkinsons-assistant/metrics"
)

var (
	ErrDrugNameRequired = errors.New("drug name is required")
	ErrDrugNotFound     = errors.New("drug not found")
)

// Service implements interfaces.QueryService
type Service struct {
	kb        interfaces.KnowledgeBase
	enricher  *enrichment.Enricher
	completer interfaces.Completer
	store     interfaces.ConversationStore
}

// NewService creates the query service. store may be nil, in which case
// conversations are not persisted.
func NewService(
	kb interfaces.KnowledgeBase,
	enricher *enrichment.Enricher,
	completer interfaces.Completer,
	store interfaces.ConversationStore,
) *Service {
	return &Service{
		kb:        kb,
		enricher:  enricher,
		completer: completer,
		store:     store,
	}
}

// Chat answers a question: the completion (or its fallback text) is enriched
// with the resources of every mentioned drug, logged, then returned.
func (s *Service) Chat(ctx context.Context, message string) string {
	raw := s.completer.Complete(ctx, message)

	mentions := s.enricher.Mentions(raw, message)
	for _, mention := range mentions {
		metrics.DrugMentionsTotal.WithLabelValues(mention.Record.ID).Inc()
	}

	response := raw + enrichment.Render(s.enricher.SectionsFor(mentions))

	s.logConversation(message, response)
	return response
}

// logConversation never fails the turn, a write error is only reported
func (s *Service) logConversation(message, response string) {
	if s.store == nil {
		return
	}

	if err := s.store.Log(message, response); err != nil {
		metrics.ConversationLogWritesTotal.WithLabelValues("error").Inc()
		logging.Warn("Failed to write conversation log", "error", err)
		return
	}
	metrics.ConversationLogWritesTotal.WithLabelValues("ok").Inc()
}

// DrugInfo returns the record matching name, see drugdb.KnowledgeBase.Lookup
func (s *Service) DrugInfo(name string) (entities.DrugInfo, error) {
	if strings.TrimSpace(name) == "" {
		return entities.DrugInfo{}, ErrDrugNameRequired
	}

	record, ok := s.kb.Lookup(name)
	if !ok {
		return entities.DrugInfo{}, ErrDrugNotFound
	}

	return entities.DrugInfo{
		Name:       drugdb.DisplayName(record.ID),
		DrugRecord: record,
	}, nil
}

// DrugList returns the display names of every known drug in dataset order
func (s *Service) DrugList() []string {
	drugs := s.kb.AllDrugs()
	names := make([]string, 0, len(drugs))
	for _, drug := range drugs {
		names = append(names, drugdb.DisplayName(drug.ID))
	}
	return names
}
