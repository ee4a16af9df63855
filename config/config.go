// Package config has the configuration file for the app
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment the process runs in
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
)

// ParseEnvironment converts an ENV value, accepting long forms like "production"
func ParseEnvironment(value string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	}
	return EnvDevelopment, fmt.Errorf("ENV must be one of: [dev staging prod test], got: %s", value)
}

func (e Environment) String() string {
	return string(e)
}

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               Environment
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
	MaxRequestBody    int64 // Maximum request body size in bytes
	MaxHeaderSize     int64 // Maximum header size in bytes
	AllowedOrigins    []string

	// Chat completion endpoint (any OpenAI compatible API)
	CompletionBaseURL    string
	CompletionAPIKey     string
	CompletionModel      string
	CompletionTimeout    time.Duration
	CompletionMaxRetries int

	ConversationLogDir        string
	ConversationRetentionDays int // 0 keeps conversation logs forever
	DrugMatchMode             string
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", string(EnvDevelopment)))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               env,
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogDir:            getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),         // 4 weeks default
		MaxLogFileSize:    getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 104857600), // 100MB default
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 65536),      // 64KB default, chat messages are short
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),     // 1MB default
		AllowedOrigins:    getListEnvWithDefault("ALLOWED_ORIGINS", []string{"*"}),

		CompletionBaseURL:    getEnvWithDefault("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1"),
		CompletionAPIKey:     os.Getenv("COMPLETION_API_KEY"),
		CompletionModel:      getEnvWithDefault("COMPLETION_MODEL", "llama-3.3-70b-versatile"),
		CompletionTimeout:    getDurationEnvWithDefault("COMPLETION_TIMEOUT", 30*time.Second),
		CompletionMaxRetries: getIntEnvWithDefault("COMPLETION_MAX_RETRIES", 1),

		ConversationLogDir:        getEnvWithDefault("CONVERSATION_LOG_DIR", "conversation_logs"),
		ConversationRetentionDays: getIntEnvWithDefault("CONVERSATION_RETENTION_DAYS", 0),
		DrugMatchMode:             getEnvWithDefault("DRUG_MATCH_MODE", "substring"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	if err := validateCompletion(cfg); err != nil {
		return err
	}

	if cfg.ConversationRetentionDays < 0 || cfg.ConversationRetentionDays > 3650 {
		return fmt.Errorf("invalid CONVERSATION_RETENTION_DAYS: must be between 0 and 3650, got: %d", cfg.ConversationRetentionDays)
	}

	if strings.TrimSpace(cfg.ConversationLogDir) == "" {
		return fmt.Errorf("invalid CONVERSATION_LOG_DIR: cannot be empty")
	}

	switch strings.ToLower(cfg.DrugMatchMode) {
	case "substring", "word", "word_boundary":
	default:
		return fmt.Errorf("invalid DRUG_MATCH_MODE: must be substring or word, got: %s", cfg.DrugMatchMode)
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "127.0.0.1" || address == "::1" || address == "localhost" || address == "0.0.0.0" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	if !ip.IsLoopback() && !ip.IsPrivate() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env Environment) error {
	switch env {
	case EnvDevelopment, EnvStaging, EnvProduction, EnvTest:
		return nil
	case "":
		return fmt.Errorf("ENV cannot be empty")
	}

	return fmt.Errorf("ENV must be one of: [dev staging prod test], got: %s", env)
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateSizeLimit validates size limit configuration values
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 {
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateMaxLogFileSize validates the MAX_LOG_FILE_SIZE environment variable
func validateMaxLogFileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE must be positive, got: %d", size)
	}

	// Minimum 1MB, maximum 1GB
	if size < 1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too small (min 1MB), got: %d bytes", size)
	}

	if size > 1024*1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too large (max 1GB), got: %d bytes", size)
	}

	return nil
}

// validateCompletion validates the chat completion endpoint settings
func validateCompletion(cfg *Config) error {
	u, err := url.Parse(cfg.CompletionBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("invalid COMPLETION_BASE_URL: must be an absolute http(s) URL, got: %s", cfg.CompletionBaseURL)
	}

	if u.Scheme == "http" && cfg.Env == EnvProduction {
		return fmt.Errorf("invalid COMPLETION_BASE_URL: plain http is not allowed in prod")
	}

	// The key is a secret, it has no default and is only optional in tests
	if cfg.CompletionAPIKey == "" && cfg.Env != EnvTest {
		return fmt.Errorf("missing COMPLETION_API_KEY")
	}

	if strings.TrimSpace(cfg.CompletionModel) == "" {
		return fmt.Errorf("invalid COMPLETION_MODEL: cannot be empty")
	}

	if cfg.CompletionTimeout < time.Second || cfg.CompletionTimeout > 5*time.Minute {
		return fmt.Errorf("invalid COMPLETION_TIMEOUT: must be between 1s and 5m, got: %s", cfg.CompletionTimeout)
	}

	if cfg.CompletionMaxRetries < 0 || cfg.CompletionMaxRetries > 3 {
		return fmt.Errorf("invalid COMPLETION_MAX_RETRIES: must be between 0 and 3, got: %d", cfg.CompletionMaxRetries)
	}

	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64EnvWithDefault gets an environment variable as int64 with a default value
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnvWithDefault accepts Go durations ("45s") or plain seconds ("45")
func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// getListEnvWithDefault splits a comma separated variable
func getListEnvWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"ALLOWED_ORIGINS",
		"COMPLETION_BASE_URL",
		"COMPLETION_API_KEY",
		"COMPLETION_MODEL",
		"COMPLETION_TIMEOUT",
		"COMPLETION_MAX_RETRIES",
		"CONVERSATION_LOG_DIR",
		"CONVERSATION_RETENTION_DAYS",
		"DRUG_MATCH_MODE",
	}
}
