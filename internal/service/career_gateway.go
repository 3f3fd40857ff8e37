package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/llm"
	"careerpath/internal/metrics"
)

// FailureReason explica por qué el camino externo no produjo un resultado usable.
type FailureReason string

const (
	ReasonNotConfigured FailureReason = "not_configured"
	ReasonTimeout       FailureReason = "timeout"
	ReasonHTTPStatus    FailureReason = "http_status"
	ReasonTransport     FailureReason = "transport"
	ReasonEmptyResponse FailureReason = "empty_response"
	ReasonInvalidJSON   FailureReason = "invalid_json"
	ReasonInvalidShape  FailureReason = "invalid_shape"
	ReasonEmptyList     FailureReason = "empty_list"
)

const DefaultGatewayTimeout = 30 * time.Second

// GatewayResult es éxito con Text o falla con Reason; nunca ambos.
type GatewayResult struct {
	Text   string
	Reason FailureReason
	Err    error
}

func (r GatewayResult) OK() bool {
	return r.Reason == ""
}

// ModelGateway llama al modelo externo una sola vez, con timeout y sin reintentos.
type ModelGateway struct {
	client  llm.LLMClient
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewModelGateway acepta client nil: en ese caso el gateway queda deshabilitado.
func NewModelGateway(client llm.LLMClient, model string, timeout time.Duration, logger *zap.Logger) *ModelGateway {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelGateway{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (g *ModelGateway) Enabled() bool {
	return g != nil && g.client != nil
}

func (g *ModelGateway) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// Generate devuelve el texto crudo del modelo o la razón de la falla.
func (g *ModelGateway) Generate(ctx context.Context, input domain.QuestionnaireInput) GatewayResult {
	if !g.Enabled() {
		return GatewayResult{Reason: ReasonNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.call(ctx, BuildCareerPrompt(input))
	metrics.GatewayDuration.Observe(time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		reason := classifyGatewayError(ctx, err)
		metrics.GatewayFailures.WithLabelValues(string(reason)).Inc()
		g.logger.Warn("external model call failed",
			zap.String("reason", string(reason)),
			zap.String("model", g.model),
			zap.Error(err),
		)
		return GatewayResult{Reason: reason, Err: err}
	}
	return GatewayResult{Text: text}
}

// call aísla al motor de pánicos del proveedor.
func (g *ModelGateway) call(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("llm client panic: %v", r)
		}
	}()
	return g.client.Generate(ctx, prompt)
}

func classifyGatewayError(ctx context.Context, err error) FailureReason {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &statusErr):
		return ReasonHTTPStatus
	case errors.Is(err, llm.ErrEmptyResponse):
		return ReasonEmptyResponse
	default:
		return ReasonTransport
	}
}
