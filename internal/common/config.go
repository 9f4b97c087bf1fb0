package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Storage     StorageConfig `toml:"storage"`
	Jobs        JobsConfig    `toml:"jobs"`
	LLM         LLMConfig     `toml:"llm"`
	Notion      NotionConfig  `toml:"notion"`
	Mail        MailConfig    `toml:"mail"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// JobsConfig controls pending-job retention. A submitted job waits in the
// in-memory store until its start signal arrives; abandoned submissions are
// swept once they exceed PendingTTL.
type JobsConfig struct {
	PendingTTL    string `toml:"pending_ttl"`    // e.g. "15m" - how long a pending job may wait for its start signal
	SweepSchedule string `toml:"sweep_schedule"` // cron spec for the expiry sweep (default "@every 1m")
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects and configures the summarization provider
type LLMConfig struct {
	Provider LLMProvider  `toml:"provider"` // "gemini" (default) or "claude"
	Gemini   GeminiConfig `toml:"gemini"`
	Claude   ClaudeConfig `toml:"claude"`
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`       // default: "gemini-2.0-flash"
	Timeout     string  `toml:"timeout"`     // operation timeout as duration string (default: "2m")
	RateLimit   string  `toml:"rate_limit"`  // minimum interval between calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // completion temperature (default: 0.7)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`      // default: "claude-haiku-3-5-20241022"
	MaxTokens   int     `toml:"max_tokens"` // default: 8192
	Timeout     string  `toml:"timeout"`
	RateLimit   string  `toml:"rate_limit"`
	Temperature float32 `toml:"temperature"`
}

// NotionConfig contains the content-store collaborator configuration
type NotionConfig struct {
	APIKey       string `toml:"api_key"`
	ParentPageID string `toml:"parent_page_id"` // database the published pages are created under
	BaseURL      string `toml:"base_url"`       // default: "https://api.notion.com"
	Timeout      string `toml:"timeout"`        // per-request timeout (default: "30s")
}

// MailConfig contains SMTP notification configuration
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	To       string `toml:"to"` // stakeholder notified when a page is published
	UseTLS   bool   `toml:"use_tls"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/blogagent",
				ResetOnStartup: false,
			},
		},
		Jobs: JobsConfig{
			PendingTTL:    "15m",
			SweepSchedule: "@every 1m",
		},
		LLM: LLMConfig{
			Provider: LLMProviderGemini,
			Gemini: GeminiConfig{
				Model:       "gemini-2.0-flash",
				Timeout:     "2m",
				RateLimit:   "4s",
				Temperature: 0.7,
			},
			Claude: ClaudeConfig{
				Model:       "claude-haiku-3-5-20241022",
				MaxTokens:   8192,
				Timeout:     "2m",
				RateLimit:   "1s",
				Temperature: 0.7,
			},
		},
		Notion: NotionConfig{
			BaseURL: "https://api.notion.com",
			Timeout: "30s",
		},
		Mail: MailConfig{
			Port:     587,
			FromName: "RILA AI Agent",
			UseTLS:   true,
		},
	}
}

// LoadConfig loads configuration with precedence: defaults -> file -> env.
// A missing file path is not an error; defaults plus env apply.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies BLOGAGENT_* environment variables over the loaded
// configuration. Secrets are the usual case here; the TOML file stays
// committable without them.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("BLOGAGENT_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("BLOGAGENT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("BLOGAGENT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("BLOGAGENT_LLM_PROVIDER"); v != "" {
		config.LLM.Provider = LLMProvider(v)
	}
	if v := os.Getenv("BLOGAGENT_GEMINI_API_KEY"); v != "" {
		config.LLM.Gemini.APIKey = v
	}
	if v := os.Getenv("BLOGAGENT_CLAUDE_API_KEY"); v != "" {
		config.LLM.Claude.APIKey = v
	}
	if v := os.Getenv("BLOGAGENT_NOTION_API_KEY"); v != "" {
		config.Notion.APIKey = v
	}
	if v := os.Getenv("BLOGAGENT_NOTION_PARENT_PAGE"); v != "" {
		config.Notion.ParentPageID = v
	}
	if v := os.Getenv("BLOGAGENT_SMTP_HOST"); v != "" {
		config.Mail.Host = v
	}
	if v := os.Getenv("BLOGAGENT_SMTP_USERNAME"); v != "" {
		config.Mail.Username = v
	}
	if v := os.Getenv("BLOGAGENT_SMTP_PASSWORD"); v != "" {
		config.Mail.Password = v
	}
	if v := os.Getenv("BLOGAGENT_SMTP_FROM"); v != "" {
		config.Mail.From = v
	}
	if v := os.Getenv("BLOGAGENT_EMAIL_TO"); v != "" {
		config.Mail.To = v
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// validateConfig rejects values that would only fail later at runtime
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	for name, d := range map[string]string{
		"jobs.pending_ttl":      config.Jobs.PendingTTL,
		"llm.gemini.timeout":    config.LLM.Gemini.Timeout,
		"llm.gemini.rate_limit": config.LLM.Gemini.RateLimit,
		"llm.claude.timeout":    config.LLM.Claude.Timeout,
		"llm.claude.rate_limit": config.LLM.Claude.RateLimit,
		"notion.timeout":        config.Notion.Timeout,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid duration for %s: %q", name, d)
		}
	}

	switch config.LLM.Provider {
	case LLMProviderGemini, LLMProviderClaude:
	default:
		return fmt.Errorf("invalid llm provider: %q (expected %q or %q)", config.LLM.Provider, LLMProviderGemini, LLMProviderClaude)
	}

	return nil
}
