package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/giygas/parkinsons-assistant/assistant"
	"github.com/giygas/parkinsons-assistant/drugdb/entities"
	"github.com/giygas/parkinsons-assistant/interfaces"
)

// ============================================================================
// MOCK QUERY SERVICE
// ============================================================================

type MockQueryService struct {
	mu           sync.Mutex
	chatResponse string
	chatMessages []string
	drugs        map[string]entities.DrugInfo
	drugList     []string
	drugInfoErr  error
}

func (m *MockQueryService) Chat(ctx context.Context, message string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatMessages = append(m.chatMessages, message)
	return m.chatResponse
}

func (m *MockQueryService) DrugInfo(name string) (entities.DrugInfo, error) {
	if m.drugInfoErr != nil {
		return entities.DrugInfo{}, m.drugInfoErr
	}
	info, ok := m.drugs[name]
	if !ok {
		return entities.DrugInfo{}, assistant.ErrDrugNotFound
	}
	return info, nil
}

func (m *MockQueryService) DrugList() []string {
	return m.drugList
}

type MockQueryServiceBuilder struct {
	service *MockQueryService
}

func NewMockQueryServiceBuilder() *MockQueryServiceBuilder {
	return &MockQueryServiceBuilder{
		service: &MockQueryService{
			chatResponse: "<h3>Answer</h3>",
			drugs:        map[string]entities.DrugInfo{},
			drugList:     []string{},
		},
	}
}

func (b *MockQueryServiceBuilder) WithChatResponse(response string) *MockQueryServiceBuilder {
	b.service.chatResponse = response
	return b
}

func (b *MockQueryServiceBuilder) WithDrug(query string, info entities.DrugInfo) *MockQueryServiceBuilder {
	b.service.drugs[query] = info
	return b
}

func (b *MockQueryServiceBuilder) WithDrugList(names ...string) *MockQueryServiceBuilder {
	b.service.drugList = names
	return b
}

func (b *MockQueryServiceBuilder) WithDrugInfoError(err error) *MockQueryServiceBuilder {
	b.service.drugInfoErr = err
	return b
}

func (b *MockQueryServiceBuilder) Build() *MockQueryService {
	return b.service
}

// ============================================================================
// MOCK INPUT VALIDATOR
// ============================================================================

type MockInputValidator struct {
	drugNameErr error
	messageErr  error
}

func (m *MockInputValidator) ValidateDrugName(input string) error {
	return m.drugNameErr
}

func (m *MockInputValidator) ValidateMessage(input string) error {
	if m.messageErr != nil {
		return m.messageErr
	}
	if input == "" {
		return errors.New("message cannot be empty")
	}
	return nil
}

type MockInputValidatorBuilder struct {
	validator *MockInputValidator
}

func NewMockInputValidatorBuilder() *MockInputValidatorBuilder {
	return &MockInputValidatorBuilder{validator: &MockInputValidator{}}
}

func (b *MockInputValidatorBuilder) WithDrugNameError(err error) *MockInputValidatorBuilder {
	b.validator.drugNameErr = err
	return b
}

func (b *MockInputValidatorBuilder) WithMessageError(err error) *MockInputValidatorBuilder {
	b.validator.messageErr = err
	return b
}

func (b *MockInputValidatorBuilder) Build() interfaces.InputValidator {
	return b.validator
}

// ============================================================================
// MOCK HEALTH CHECKER
// ============================================================================

type MockHealthChecker struct {
	status     string
	data       map[string]any
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.data, m.httpStatus
}

func newHealthyChecker() *MockHealthChecker {
	return &MockHealthChecker{
		status:     "healthy",
		data:       map[string]any{"drugs": 6},
		httpStatus: http.StatusOK,
	}
}

func newTestHandler(service *MockQueryService, validator interfaces.InputValidator) *HTTPHandlerImpl {
	return NewHTTPHandler(service, validator, newHealthyChecker()).(*HTTPHandlerImpl)
}
