package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMissingRequired = errors.New("missing required configuration")
	ErrInvalidValue    = errors.New("invalid configuration value")
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"pagewise"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"pagewise"`

	MigrationPath string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Model
	LLMProvider      string `envconfig:"LLM_PROVIDER" default:"gemini"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	GeminiModel      string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel      string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL    string `envconfig:"OPENAI_BASE_URL"`
	ResponseLanguage string `envconfig:"RESPONSE_LANGUAGE" default:"spanish"`

	// Auth
	AuthSecret string `envconfig:"AUTH_SECRET"`

	// Run events
	EnableRunEvents bool   `envconfig:"ENABLE_RUN_EVENTS" default:"true"`
	NSQLookupd      string `envconfig:"NSQ_LOOKUPD" default:"nsqlookupd:4161"`
	NSQDHost        string `envconfig:"NSQD_HOST" default:"nsqd:4150"`
	NSQDHTTP        string `envconfig:"NSQD_HTTP" default:"nsqd:4151"`

	// Server
	ServerPort      int    `envconfig:"SERVER_PORT" default:"8080"`
	RunLogPath      string `envconfig:"RUN_LOG_PATH" default:"data/logs/runs.log"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	MaxRequestBytes int64  `envconfig:"MAX_REQUEST_BYTES" default:"1048576"` // 1MB

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	rootEnv := filepath.Join(cwd, "../../.env")
	_ = godotenv.Load(rootEnv)

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.DBUser == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingRequired)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingRequired)
	}
	if c.AuthSecret == "" {
		return fmt.Errorf("%w: AUTH_SECRET", ErrMissingRequired)
	}

	switch strings.ToLower(c.LLMProvider) {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingRequired)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("%w: LLM_PROVIDER=%q", ErrInvalidValue, c.LLMProvider)
	}

	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL=%q", ErrInvalidValue, c.LogLevel)
	}
	return nil
}

// SlogLevel parses LOG_LEVEL.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}
