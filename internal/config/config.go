package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns  int    `env:"DB_MIN_CONNS" envDefault:"1"`
	JWTSecret   string `env:"JWT_SECRET"`
	JWTIssuer   string `env:"JWT_ISSUER" envDefault:"careerpath"`

	LLMProvider       string `env:"LLM_PROVIDER" envDefault:"gemini"`
	GenAIAPIKey       string `env:"GENAI_API_KEY"`
	GenAIModel        string `env:"GENAI_MODEL" envDefault:"gemini-1.5-flash"`
	GenAIEndpoint     string `env:"GENAI_ENDPOINT"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMTimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"30"`
	PromptVersion     string `env:"PROMPT_VERSION" envDefault:"v1"`

	RecommendationsPerSubmission int `env:"RECOMMENDATIONS_PER_SUBMISSION" envDefault:"1"`
	RecycleBinDays               int `env:"RECYCLE_BIN_DAYS" envDefault:"30"`
	DashboardLimit               int `env:"DASHBOARD_LIMIT" envDefault:"5"`
	SubmissionRateLimit          int `env:"SUBMISSION_RATE_LIMIT" envDefault:"5"`
	SubmissionRateWindowMinutes  int `env:"SUBMISSION_RATE_WINDOW_MINUTES" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LLMTimeout devuelve el timeout del gateway externo (30s si no es valido).
func (c *Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// ExternalEnabled indica si hay credencial para el modelo externo.
func (c *Config) ExternalEnabled() bool {
	return c.GenAIAPIKey != ""
}
