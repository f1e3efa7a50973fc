package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// ErrMissingCredential marks a fatal startup condition: no provider API key
// was found. It must be reported before any UI is shown.
var ErrMissingCredential = errors.New("missing provider credential")

const defaultModel = "doubao-1-5-pro-32k-250115"

// Config aggregates everything the application needs, loaded once at startup
// and passed down explicitly.
type Config struct {
	AI      AIConfig
	Chat    ChatConfig
	History HistoryConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		AI:      ai,
		Chat:    chat,
		History: loadHistoryConfig(),
	}, nil
}

// AIConfig describes the hosted model provider.
type AIConfig struct {
	APIKey         string
	AccessKey      string
	SecretKey      string
	Model          string
	BaseURL        string
	Region         string
	Temperature    *float64
	TopP           *float64
	MaxTokens      *int
	StreamResponse bool
}

// ChatConfig describes conversation behavior.
type ChatConfig struct {
	PersonaID string
	// ContextLimit bounds how many prior turns are sent with each request.
	// Zero means the full transcript is sent.
	ContextLimit int
}

// HistoryConfig describes the local exchange log.
type HistoryConfig struct {
	Path string
}

// hasCredentials reports whether either credential form is present.
func (c AIConfig) hasCredentials() bool {
	return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
}

// NewChatModel builds the Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.hasCredentials() {
		return nil, fmt.Errorf("%w: set ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY", ErrMissingCredential)
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	stream, err := parseBoolEnv("ARK_STREAM", true)
	if err != nil {
		return AIConfig{}, err
	}

	cfg := AIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:      strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:      strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:          getEnvOrDefault("ARK_MODEL", defaultModel),
		BaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:    temperature,
		TopP:           topP,
		MaxTokens:      maxTokens,
		StreamResponse: stream,
	}

	if !cfg.hasCredentials() {
		return AIConfig{}, fmt.Errorf("%w: set ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY", ErrMissingCredential)
	}

	return cfg, nil
}

func loadChatConfig() (ChatConfig, error) {
	limit := 0
	if override, err := parseOptionalIntEnv("CHAT_CONTEXT_LIMIT"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return ChatConfig{}, fmt.Errorf("invalid CHAT_CONTEXT_LIMIT value %d: must be >= 0", *override)
		}
		limit = *override
	}

	return ChatConfig{
		PersonaID:    getEnvOrDefault("CHAT_PERSONA", ""),
		ContextLimit: limit,
	}, nil
}

func loadHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Path: getEnvOrDefault("HISTORY_DB_PATH", "chat_history.db"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
