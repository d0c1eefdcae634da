package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"
)

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Log         LogConfig
	Provider    ProviderConfig
	Database    DatabaseConfig
	VectorIndex VectorIndexConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8000"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"90"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or console
}

// ProviderConfig contains upstream LLM credentials and defaults.
// Timeout is in seconds and applies to every gateway call.
type ProviderConfig struct {
	ChatProvider      string `env:"CHAT_PROVIDER"                envDefault:"openai"` // openai or echo
	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL"          envDefault:"https://openrouter.ai/api/v1"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL"              envDefault:"https://api.openai.com/v1"`
	DetectKeyPrefix   bool   `env:"OPENROUTER_DETECT_KEY_PREFIX" envDefault:"false"`
	DefaultModel      string `env:"DEFAULT_MODEL"                envDefault:"openai/chatgpt-4o-latest"`
	EmbeddingModel    string `env:"EMBED_MODEL"                  envDefault:"text-embedding-3-small"`
	Timeout           int    `env:"PROVIDER_TIMEOUT"             envDefault:"60"`
	MaxRetries        int    `env:"PROVIDER_MAX_RETRIES"         envDefault:"0"`
	HTTPReferer       string `env:"OPENROUTER_HTTP_REFERER"`
	AppTitle          string `env:"OPENROUTER_APP_TITLE"         envDefault:"LLM Workflow Copilot"`
}

// TimeoutDuration returns the per-call timeout.
func (p *ProviderConfig) TimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// DatabaseConfig contains relational store settings.
type DatabaseConfig struct {
	Path string `env:"DATABASE_PATH" envDefault:"llm_workflow.db"`
}

// VectorIndexConfig contains message index settings.
type VectorIndexConfig struct {
	Enabled       bool    `env:"MESSAGE_INDEX_ENABLED"  envDefault:"false"`
	Backend       string  `env:"VECTOR_INDEX_BACKEND"   envDefault:"memory"` // memory or redis
	Namespace     string  `env:"VECTOR_INDEX_NAMESPACE" envDefault:"messages"`
	Threshold     float64 `env:"VECTOR_INDEX_THRESHOLD" envDefault:"0.75"`
	Dimension     int     `env:"EMBED_DIMENSION"` // 0 derives it from EMBED_MODEL
	RedisAddr     string  `env:"REDIS_ADDR"             envDefault:"localhost:6379"`
	RedisPassword string  `env:"REDIS_PASSWORD"`
	RedisDB       int     `env:"REDIS_DB"               envDefault:"0"`
	RedisIndex    string  `env:"REDIS_INDEX"            envDefault:"idx:messages"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*LogConfig
	*ProviderConfig
	*DatabaseConfig
	*VectorIndexConfig
}

// Load loads environment files and parses configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Log,
		&cfg.Provider,
		&cfg.Database,
		&cfg.VectorIndex,
	}
}
