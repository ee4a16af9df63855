package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setValidEnv() {
	_ = os.Setenv("PORT", "8002")
	_ = os.Setenv("ADDRESS", "127.0.0.1")
	_ = os.Setenv("ENV", "dev")
	_ = os.Setenv("LOG_LEVEL", "info")
	_ = os.Setenv("COMPLETION_API_KEY", "test-key")
}

func TestLoadValidConfig(t *testing.T) {
	setValidEnv()
	_ = os.Setenv("COMPLETION_MODEL", "test-model")
	_ = os.Setenv("COMPLETION_TIMEOUT", "45s")
	_ = os.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected env dev, got %s", cfg.Env)
	}
	if cfg.CompletionAPIKey != "test-key" {
		t.Errorf("Expected API key from environment, got %q", cfg.CompletionAPIKey)
	}
	if cfg.CompletionModel != "test-model" {
		t.Errorf("Expected model test-model, got %s", cfg.CompletionModel)
	}
	if cfg.CompletionTimeout != 45*time.Second {
		t.Errorf("Expected timeout 45s, got %s", cfg.CompletionTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected allowed origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cleanupEnv()
	_ = os.Setenv("COMPLETION_API_KEY", "test-key")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.CompletionBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("Unexpected default base URL %s", cfg.CompletionBaseURL)
	}
	if cfg.CompletionModel != "llama-3.3-70b-versatile" {
		t.Errorf("Unexpected default model %s", cfg.CompletionModel)
	}
	if cfg.CompletionTimeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %s", cfg.CompletionTimeout)
	}
	if cfg.CompletionMaxRetries != 1 {
		t.Errorf("Expected default retries 1, got %d", cfg.CompletionMaxRetries)
	}
	if cfg.ConversationLogDir != "conversation_logs" {
		t.Errorf("Unexpected conversation log dir %s", cfg.ConversationLogDir)
	}
	if cfg.DrugMatchMode != "substring" {
		t.Errorf("Expected substring match mode, got %s", cfg.DrugMatchMode)
	}
}

func TestMissingAPIKey(t *testing.T) {
	setValidEnv()
	_ = os.Unsetenv("COMPLETION_API_KEY")
	defer cleanupEnv()

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "COMPLETION_API_KEY") {
		t.Errorf("Expected missing key error, got %v", err)
	}

	// Tests may run without a key
	_ = os.Setenv("ENV", "test")
	if _, err := Load(); err != nil {
		t.Errorf("Expected no error in test env, got %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		key      string
		value    string
		expected string
	}{
		{"PORT", "abc", "PORT must be a valid number"},
		{"PORT", "0", "PORT must be between 1 and 65535"},
		{"PORT", "65536", "PORT must be between 1 and 65535"},
		{"PORT", "80", "PORT 80 is privileged"},
		{"ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"ADDRESS", "8.8.8.8", "is a public IP"},
		{"ENV", "invalid", "ENV must be one of"},
		{"LOG_LEVEL", "invalid", "LOG_LEVEL must be one of"},
		{"COMPLETION_BASE_URL", "not a url", "COMPLETION_BASE_URL"},
		{"COMPLETION_BASE_URL", "ftp://example.org", "COMPLETION_BASE_URL"},
		{"COMPLETION_TIMEOUT", "10m", "COMPLETION_TIMEOUT"},
		{"COMPLETION_MAX_RETRIES", "7", "COMPLETION_MAX_RETRIES"},
		{"CONVERSATION_RETENTION_DAYS", "-1", "CONVERSATION_RETENTION_DAYS"},
		{"DRUG_MATCH_MODE", "fuzzy", "DRUG_MATCH_MODE"},
		{"MAX_REQUEST_BODY", "-5", "MAX_REQUEST_BODY"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			setValidEnv()
			_ = os.Setenv(tc.key, tc.value)
			defer cleanupEnv()

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestPlainHTTPRejectedInProd(t *testing.T) {
	setValidEnv()
	_ = os.Setenv("ENV", "production")
	_ = os.Setenv("COMPLETION_BASE_URL", "http://localhost:9999/v1")
	defer cleanupEnv()

	if _, err := Load(); err == nil {
		t.Error("Expected plain http endpoint to be rejected in prod")
	}
}

func TestDurationParsing(t *testing.T) {
	defer cleanupEnv()

	_ = os.Setenv("COMPLETION_TIMEOUT", "12")
	if got := getDurationEnvWithDefault("COMPLETION_TIMEOUT", time.Second); got != 12*time.Second {
		t.Errorf("Expected plain seconds to parse, got %s", got)
	}

	_ = os.Setenv("COMPLETION_TIMEOUT", "soon")
	if got := getDurationEnvWithDefault("COMPLETION_TIMEOUT", time.Second); got != time.Second {
		t.Errorf("Expected default on garbage, got %s", got)
	}
}

func cleanupEnv() {
	for _, key := range GetEnvVars() {
		_ = os.Unsetenv(key)
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"production", EnvProduction, false},
		{"test", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for %s: %v", tt.input, err)
				}
				if env != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, env)
				}
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	tests := []struct {
		env      Environment
		expected string
	}{
		{EnvDevelopment, "dev"},
		{EnvStaging, "staging"},
		{EnvProduction, "prod"},
		{EnvTest, "test"},
	}

	for _, tt := range tests {
		if got := tt.env.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}
