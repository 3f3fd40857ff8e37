package service

import (
	"context"

	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/logger"
	"careerpath/internal/metrics"
)

// EngineOutcome es el estado terminal de una ejecución del motor.
type EngineOutcome string

const (
	OutcomeExternalSuccess   EngineOutcome = "EXTERNAL_SUCCESS"
	OutcomeHeuristicFallback EngineOutcome = "HEURISTIC_FALLBACK"
)

// EngineResult lleva las recomendaciones finales y, si hubo fallback, la razón.
type EngineResult struct {
	Recommendations []domain.CareerRecommendation
	Outcome         EngineOutcome
	FallbackReason  FailureReason
}

// Source devuelve el origen común a todas las recomendaciones del resultado.
func (r EngineResult) Source() domain.GenerationSource {
	if r.Outcome == OutcomeExternalSuccess {
		return domain.SourceExternal
	}
	return domain.SourceHeuristic
}

// RecommendationEngine coordina reglas locales, modelo externo y normalizador.
// No guarda estado mutable: puede usarse desde varias requests a la vez.
type RecommendationEngine struct {
	classifier    HeuristicClassifier
	gateway       *ModelGateway
	normalizer    ResponseNormalizer
	promptVersion string
	logger        *zap.Logger
}

// NewRecommendationEngine acepta gateway nil (solo heurística).
func NewRecommendationEngine(gateway *ModelGateway, promptVersion string, logger *zap.Logger) *RecommendationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationEngine{
		classifier:    NewHeuristicClassifier(promptVersion),
		gateway:       gateway,
		normalizer:    NewResponseNormalizer(gateway.Model(), promptVersion),
		promptVersion: promptVersion,
		logger:        logger,
	}
}

// Recommend siempre devuelve entre 1 y 3 recomendaciones, todas del mismo origen.
func (e *RecommendationEngine) Recommend(ctx context.Context, input domain.QuestionnaireInput) EngineResult {
	tokens := extractTokens(input.FreeText())
	heuristic := e.classifier.Classify(tokens)

	attempt := e.tryExternal(ctx, input, hasTechnicalSignal(tokens))
	if attempt.external != nil {
		metrics.RecommendationsTotal.WithLabelValues(string(domain.SourceExternal)).Inc()
		return EngineResult{
			Recommendations: truncateRecommendations(attempt.external),
			Outcome:         OutcomeExternalSuccess,
		}
	}

	out := truncateRecommendations(heuristic)
	for i := range out {
		e.stampHeuristic(&out[i])
	}
	metrics.RecommendationsTotal.WithLabelValues(string(domain.SourceHeuristic)).Inc()
	e.logger.Debug("using heuristic recommendations", zap.String("reason", string(attempt.failure)))
	return EngineResult{
		Recommendations: out,
		Outcome:         OutcomeHeuristicFallback,
		FallbackReason:  attempt.failure,
	}
}

// RecommendMap es la entrada basada en mapa: claves ausentes cuentan como texto vacío.
func (e *RecommendationEngine) RecommendMap(ctx context.Context, fields map[string]string) domain.RecommendationSet {
	res := e.Recommend(ctx, domain.QuestionnaireInputFromMap(fields))
	return domain.RecommendationSet{Recommendations: res.Recommendations}
}

type externalAttempt struct {
	external []domain.CareerRecommendation
	failure  FailureReason
}

func (e *RecommendationEngine) tryExternal(ctx context.Context, input domain.QuestionnaireInput, technical bool) externalAttempt {
	gen := e.gateway.Generate(ctx, input)
	if !gen.OK() {
		return externalAttempt{failure: gen.Reason}
	}

	norm := e.normalizer.Normalize(gen.Text, technical)
	if !norm.OK() {
		metrics.NormalizerRejections.WithLabelValues(string(norm.Reason)).Inc()
		e.logger.Warn("external recommendations rejected",
			zap.String("reason", string(norm.Reason)),
			zap.String("excerpt", logger.Truncate(gen.Text, logExcerptRunes)),
			zap.Error(norm.Err),
		)
		return externalAttempt{failure: norm.Reason}
	}
	return externalAttempt{external: norm.Recommendations}
}

func (e *RecommendationEngine) stampHeuristic(rec *domain.CareerRecommendation) {
	rec.GenerationSource = domain.SourceHeuristic
	if rec.ModelIdentifier == "" {
		rec.ModelIdentifier = HeuristicModelIdentifier
	}
	if rec.PromptVersion == "" {
		rec.PromptVersion = e.promptVersion
	}
}

const logExcerptRunes = 200

func truncateRecommendations(recs []domain.CareerRecommendation) []domain.CareerRecommendation {
	if len(recs) > domain.MaxRecommendations {
		recs = recs[:domain.MaxRecommendations]
	}
	out := make([]domain.CareerRecommendation, len(recs))
	copy(out, recs)
	return out
}
