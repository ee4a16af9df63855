// Package validation checks user input before it reaches the assistant.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/giygas/parkinsons-assistant/interfaces"
)

const (
	// MaxDrugNameLength bounds the name query of a drug lookup, in characters
	MaxDrugNameLength = 50
	// MaxMessageLength bounds a chat message, in characters
	MaxMessageLength = 2000
)

// InputValidatorImpl implements interfaces.InputValidator
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateDrugName validates the name query of a drug lookup. The name is
// only matched by containment against the dataset, so decorated forms such
// as "levodopa/carbidopa" or "Levodopa (Sinemet)" are accepted as they are.
func (v *InputValidatorImpl) ValidateDrugName(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("drug name cannot be empty")
	}

	if !utf8.ValidString(trimmed) {
		return fmt.Errorf("drug name is not valid UTF-8")
	}

	if strings.ContainsRune(trimmed, 0) {
		return fmt.Errorf("drug name contains invalid characters")
	}

	if n := utf8.RuneCountInString(trimmed); n > MaxDrugNameLength {
		return fmt.Errorf("drug name too long: %d characters, maximum %d", n, MaxDrugNameLength)
	}

	return nil
}

// ValidateMessage validates a chat message. Messages are free text, so only
// emptiness, size and encoding are checked.
func (v *InputValidatorImpl) ValidateMessage(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("message cannot be empty")
	}

	if !utf8.ValidString(input) {
		return fmt.Errorf("message is not valid UTF-8")
	}

	if strings.ContainsRune(input, 0) {
		return fmt.Errorf("message contains invalid characters")
	}

	if n := utf8.RuneCountInString(input); n > MaxMessageLength {
		return fmt.Errorf("message too long: %d characters, maximum %d", n, MaxMessageLength)
	}

	return nil
}
