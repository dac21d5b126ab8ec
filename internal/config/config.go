package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	LLM          LLMConfig
	CORS         CORSConfig
	Triage       TriageConfig
	Chat         ChatConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// LLMConfig holds connection values for the completion backend.
type LLMConfig struct {
	BaseURL            string
	APIKey             string
	Model              string
	VisionModel        string
	TimeoutSeconds     int
	MaxRetries         int
	RetryBackoffMillis int
}

// CORSConfig restricts cross-origin access to the configured frontend.
type CORSConfig struct {
	AllowOrigin string
}

// TriageConfig tunes classification and ticket lifecycle behavior.
type TriageConfig struct {
	// CategoryProfile selects the category enumeration: "default", "fine",
	// or a comma-separated custom list.
	CategoryProfile    string
	EnforceTransitions bool
}

// ChatConfig bounds per-user session history.
type ChatConfig struct {
	// HistoryMaxTurns caps retained turns per user; 0 disables the cap.
	HistoryMaxTurns int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeoutSec := getEnvAsInt("LLM_TIMEOUT_SECONDS", 30)
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT_SECONDS must be positive, got %d", timeoutSec)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-triage"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		LLM: LLMConfig{
			BaseURL:            getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:             os.Getenv("LLM_API_KEY"),
			Model:              getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			VisionModel:        getEnv("LLM_VISION_MODEL", "gpt-4o-mini"),
			TimeoutSeconds:     timeoutSec,
			MaxRetries:         getEnvAsInt("LLM_MAX_RETRIES", 2),
			RetryBackoffMillis: getEnvAsInt("LLM_RETRY_BACKOFF_MILLIS", 500),
		},
		CORS: CORSConfig{
			AllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "http://localhost:5173"),
		},
		Triage: TriageConfig{
			CategoryProfile:    getEnv("TRIAGE_CATEGORY_PROFILE", "default"),
			EnforceTransitions: getEnvAsBool("TRIAGE_ENFORCE_TRANSITIONS", false),
		},
		Chat: ChatConfig{
			HistoryMaxTurns: getEnvAsInt("CHAT_HISTORY_MAX_TURNS", 200),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "support@motivitylabs.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call deadline for completion requests.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// RetryBackoff returns the base delay between completion retries.
func (l LLMConfig) RetryBackoff() time.Duration {
	return time.Duration(l.RetryBackoffMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
