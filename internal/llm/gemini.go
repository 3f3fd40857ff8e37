package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-1.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implementa LLMClient sobre el SDK de Google GenAI.
type GeminiClient struct {
	models contentGenerator
	model  string
}

// NewGeminiClient crea un cliente para el backend Gemini API. endpoint vacío usa el host por defecto.
func NewGeminiClient(ctx context.Context, apiKey, model, endpoint string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: endpoint}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiClient(client.Models, model), nil
}

func newGeminiClient(models contentGenerator, model string) *GeminiClient {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{models: models, model: model}
}

// Generate envía el prompt y devuelve el texto de la primera candidata.
// El SDK puede entrar en pánico con respuestas de error sin cuerpo "error"; se devuelve como error.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (_ string, err error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini client is not initialized")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generate content: sdk panic: %v", r)
		}
	}()

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("generate content: %w", &StatusError{Code: apiErr.Code})
		}
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", ErrEmptyResponse
	}
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		builder.WriteString(part.Text)
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

func (g *GeminiClient) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
