package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Upstream providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "openai/gpt-3.5-turbo"
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultChatEndpoint      = "http://localhost:8080/api/chat"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Upstream LLM
	Provider          string
	APIKey            string
	OpenRouterBaseURL string
	Model             string
	UpstreamTimeout   time.Duration

	// Identifying headers sent to OpenRouter
	AppURL   string
	AppTitle string

	// Redis (optional, chat events)
	RedisURL string
}

// Load reads the server configuration. It panics when the credential for the
// selected provider is missing so a misconfigured deployment never starts.
func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenRouter))

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		Provider:          provider,
		OpenRouterBaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", DefaultOpenRouterBaseURL),
		UpstreamTimeout:   time.Duration(getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", 25)) * time.Second,
		AppURL:            getEnvOrDefault("APP_URL", "https://ecommerce-chatbot.vercel.app"),
		AppTitle:          getEnvOrDefault("APP_TITLE", "Ecommerce Chatbot"),
		RedisURL:          getEnvOrDefault("REDIS_URL", ""),
	}

	switch provider {
	case ProviderOpenRouter:
		cfg.APIKey = mustGetEnv("OPENROUTER_API_KEY")
		cfg.Model = getEnvOrDefault("CHAT_MODEL", DefaultOpenRouterModel)
	case ProviderGemini:
		cfg.APIKey = mustGetEnv("GEMINI_API_KEY")
		cfg.Model = getEnvOrDefault("CHAT_MODEL", DefaultGeminiModel)
	default:
		panic(fmt.Sprintf("unsupported LLM_PROVIDER %q", provider))
	}

	return cfg
}

// ClientConfig configures the terminal chat client.
type ClientConfig struct {
	Endpoint string
	Timeout  time.Duration
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		Endpoint: getEnvOrDefault("CHAT_ENDPOINT", DefaultChatEndpoint),
		Timeout:  time.Duration(getEnvAsIntOrDefault("CHAT_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}
