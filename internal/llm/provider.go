package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ProviderConfig agrupa lo necesario para construir un proveedor.
type ProviderConfig struct {
	Provider string
	APIKey   string
	Model    string
	Endpoint string
	BaseURL  string
	Timeout  time.Duration
}

// NewProvider devuelve el cliente configurado, o nil sin credencial (camino heurístico).
func NewProvider(ctx context.Context, cfg ProviderConfig, logger *zap.Logger) (LLMClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		return NewHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
