package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Movie bot specifics
	OpenAI  OpenAIConfig
	TMDb    TMDbConfig
	Session SessionConfig
	Chat    ChatConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// OpenAIConfig is the default chat-completion provider, used when no
// llm.providers section is configured.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type TMDbConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

type SessionConfig struct {
	TTL         time.Duration
	MaxSessions int
	Greeting    string
}

type ChatConfig struct {
	SystemPrompt string
	MoodPrompt   string
	Temperature  float64
	MaxTokens    int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`

	// CredentialName is what a missing APIKey is reported as, e.g. OPENAI_API_KEY.
	CredentialName string `yaml:"-"`
}

const (
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvTMDbAPIKey   = "TMDB_API_KEY"
)

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// OpenAI (openai.api_key <- OPENAI_API_KEY via the key replacer)
	cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	cfg.OpenAI.Model = v.GetString("openai.model")
	cfg.OpenAI.BaseURL = v.GetString("openai.base_url")

	// TMDb (tmdb.api_key <- TMDB_API_KEY)
	cfg.TMDb.APIKey = v.GetString("tmdb.api_key")
	cfg.TMDb.BaseURL = v.GetString("tmdb.base_url")
	cfg.TMDb.Language = v.GetString("tmdb.language")
	cfg.TMDb.Timeout = v.GetDuration("tmdb.timeout")

	// Session & chat
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Session.MaxSessions = v.GetInt("session.max_sessions")
	cfg.Session.Greeting = v.GetString("session.greeting")
	cfg.Chat.SystemPrompt = v.GetString("chat.system_prompt")
	cfg.Chat.MoodPrompt = v.GetString("chat.mood_prompt")
	cfg.Chat.Temperature = v.GetFloat64("chat.temperature")
	cfg.Chat.MaxTokens = v.GetInt("chat.max_tokens")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	// Load provider configurations
	if v.IsSet("llm.providers") {
		providersRaw := v.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					rawKey := getStringFromMap(providerMap, "api_key")
					name := getStringFromMap(providerMap, "name")
					provider := ProviderConfig{
						Name:           name,
						Enabled:        getBoolFromMap(providerMap, "enabled"),
						Priority:       getIntFromMap(providerMap, "priority"),
						APIKey:         expandEnvVar(v, rawKey),
						BaseURL:        getStringFromMap(providerMap, "base_url"),
						Model:          getStringFromMap(providerMap, "model"),
						Timeout:        getStringFromMap(providerMap, "timeout"),
						CredentialName: credentialName(name, rawKey),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// No providers section: OpenAI alone, like the classic setup.
	if len(cfg.LLM.Providers) == 0 {
		cfg.LLM.Providers = []ProviderConfig{{
			Name:           "openai",
			Enabled:        true,
			Priority:       1,
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			Model:          cfg.OpenAI.Model,
			CredentialName: EnvOpenAIAPIKey,
		}}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("openai.model", "gpt-4-0125-preview")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.timeout", "10s")

	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.max_sessions", 10000)
	v.SetDefault("session.greeting", "Hello! I'm MOVIE BOT.")
	v.SetDefault("chat.mood_prompt", "What type of movie are you in the mood for?")
	v.SetDefault("chat.temperature", 0.7)

	// LLM defaults: one attempt per provider, fall back to the next one.
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 1)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
}

// MissingCredentialError reports a required API credential that is not set.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential: %s is not set", e.Name)
}

// Validate checks the settings the service cannot start without. Every
// missing credential is reported.
func (c *Config) Validate() error {
	var errs []error

	if err := validateLLMConfig(&c.LLM); err != nil {
		errs = append(errs, err)
	}
	if c.TMDb.APIKey == "" {
		errs = append(errs, &MissingCredentialError{Name: EnvTMDbAPIKey})
	}

	return errors.Join(errs...)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

func credentialName(provider, rawKey string) string {
	if strings.HasPrefix(rawKey, "${") && strings.HasSuffix(rawKey, "}") {
		return rawKey[2 : len(rawKey)-1]
	}
	return fmt.Sprintf("llm.providers[%s].api_key", provider)
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)
	var firstMissing string

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}

		if !provider.Enabled {
			continue
		}

		// Check priority is valid
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}

		// Check for duplicate priorities
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true

		if provider.APIKey == "" {
			if firstMissing == "" {
				firstMissing = provider.CredentialName
			}
			continue
		}
		enabledCount++
	}

	if enabledCount == 0 {
		if firstMissing != "" {
			return &MissingCredentialError{Name: firstMissing}
		}
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
