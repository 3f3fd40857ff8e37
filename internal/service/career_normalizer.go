package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"careerpath/internal/domain"
)

const defaultExternalScore = 7

const recommendationEnvelopeSchema = `{
	"type": "object",
	"required": ["recommendations"],
	"properties": {
		"recommendations": {"type": "array", "minItems": 1}
	}
}`

var envelopeSchema = mustCompileSchema(recommendationEnvelopeSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// Términos que, en el nombre de la carrera, la marcan como técnica.
var technicalCareerTerms = []string{"engineer", "scientist", "developer", "ml", "ai", "data"}

// Raíces que también cuentan como técnicas: engineering, developers, mlops...
// "ai" y "data" quedan como palabra exacta para no marcar "email" o "database admin" por prefijo.
var technicalCareerStems = []string{"engineer", "scientist", "develop", "ml"}

// NormalizeResult es éxito con Recommendations o falla con Reason.
type NormalizeResult struct {
	Recommendations []domain.CareerRecommendation
	Reason          FailureReason
	Err             error
}

func (r NormalizeResult) OK() bool {
	return r.Reason == "" && len(r.Recommendations) > 0
}

// ResponseNormalizer convierte el texto del modelo en recomendaciones con el esquema completo.
type ResponseNormalizer struct {
	model         string
	promptVersion string
}

func NewResponseNormalizer(model, promptVersion string) ResponseNormalizer {
	return ResponseNormalizer{model: model, promptVersion: promptVersion}
}

// Normalize valida el sobre, filtra carreras técnicas si el usuario no tiene señal técnica,
// toma hasta 3 entradas y completa el plan de acción faltante desde el catálogo.
func (n ResponseNormalizer) Normalize(raw string, technical bool) NormalizeResult {
	doc, err := decodeRecommendationEnvelope(raw)
	if err != nil {
		return NormalizeResult{Reason: ReasonInvalidJSON, Err: err}
	}

	result, err := envelopeSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return NormalizeResult{Reason: ReasonInvalidShape, Err: err}
	}
	if !result.Valid() {
		reason := ReasonInvalidShape
		if list, ok := doc["recommendations"].([]any); ok && len(list) == 0 {
			reason = ReasonEmptyList
		}
		return NormalizeResult{Reason: reason, Err: schemaError(result)}
	}

	var entries []map[string]any
	for _, item := range doc["recommendations"].([]any) {
		if entry, ok := item.(map[string]any); ok {
			entries = append(entries, entry)
		}
	}

	if !technical {
		entries = filterTechnicalCareers(entries)
	}
	if len(entries) > domain.MaxRecommendations {
		entries = entries[:domain.MaxRecommendations]
	}

	out := make([]domain.CareerRecommendation, 0, len(entries))
	for _, entry := range entries {
		out = append(out, n.normalizeEntry(entry))
	}
	if len(out) == 0 {
		return NormalizeResult{Reason: ReasonEmptyList, Err: errors.New("no usable recommendation entries")}
	}
	return NormalizeResult{Recommendations: out}
}

func (n ResponseNormalizer) normalizeEntry(entry map[string]any) domain.CareerRecommendation {
	career := tidyCareerName(stringValue(entry["career"]))
	if career == "" {
		career = "Career"
	}

	subCareers := entry["sub_careers"]
	if subCareers == nil {
		subCareers = entry["sub_roles"]
	}

	rec := domain.CareerRecommendation{
		Career:           career,
		Score:            coerceScore(entry["score"]),
		Reason:           stringValue(entry["reason"]),
		Benefits:         stringValue(entry["benefits"]),
		Opportunities:    stringValue(entry["opportunities"]),
		SubCareers:       stringList(subCareers),
		GettingStarted:   stringList(entry["getting_started"]),
		Resources:        resourceList(entry["resources"]),
		InterviewPrep:    stringList(entry["interview_prep"]),
		HowToApply:       stringList(entry["how_to_apply"]),
		GenerationSource: domain.SourceExternal,
		ModelIdentifier:  n.model,
		PromptVersion:    n.promptVersion,
	}

	if len(rec.GettingStarted) == 0 || len(rec.Resources) == 0 || len(rec.InterviewPrep) == 0 || len(rec.HowToApply) == 0 {
		plan := ActionPlanFor(career)
		if len(rec.GettingStarted) == 0 {
			rec.GettingStarted = plan.GettingStarted
		}
		if len(rec.Resources) == 0 {
			rec.Resources = plan.Resources
		}
		if len(rec.InterviewPrep) == 0 {
			rec.InterviewPrep = plan.InterviewPrep
		}
		if len(rec.HowToApply) == 0 {
			rec.HowToApply = plan.HowToApply
		}
	}
	return rec
}

// filterTechnicalCareers quita carreras técnicas; si no queda ninguna devuelve la lista original.
func filterTechnicalCareers(entries []map[string]any) []map[string]any {
	var kept []map[string]any
	for _, entry := range entries {
		if isTechnicalCareer(stringValue(entry["career"])) {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == 0 {
		return entries
	}
	return kept
}

func isTechnicalCareer(name string) bool {
	tokens := extractTokens(name)
	if tokens.hasAny(technicalCareerTerms) {
		return true
	}
	for token := range tokens {
		for _, stem := range technicalCareerStems {
			if strings.HasPrefix(token, stem) {
				return true
			}
		}
	}
	return false
}

func decodeRecommendationEnvelope(raw string) (map[string]any, error) {
	cleaned := stripCodeFences(raw)
	candidates := []string{cleaned}
	if obj := firstJSONObject(cleaned); obj != "" && obj != cleaned {
		candidates = append(candidates, obj)
	}

	lastErr := errors.New("empty response")
	for _, candidate := range candidates {
		var doc map[string]any
		err := json.Unmarshal([]byte(candidate), &doc)
		if err == nil && doc != nil {
			return doc, nil
		}
		if err != nil {
			lastErr = err
		}
	}
	return nil, fmt.Errorf("decode recommendations: %w", lastErr)
}

func schemaError(result *gojsonschema.Result) error {
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("recommendations envelope invalid: %s", strings.Join(msgs, "; "))
}

// tidyCareerName capitaliza nombres que el modelo devuelve todo en minúsculas.
func tidyCareerName(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && name == strings.ToLower(name) {
		return cases.Title(language.English).String(name)
	}
	return name
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceScore(v any) int {
	score := defaultExternalScore
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			break
		}
		score = int(math.Round(math.Max(domain.MinScore, math.Min(domain.MaxScore, val))))
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			score = parsed
		}
	}
	return domain.ClampScore(score)
}

// stringList: valores que no son lista quedan vacíos; elementos escalares se convierten a texto.
func stringList(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		var s string
		switch val := item.(type) {
		case string:
			s = strings.TrimSpace(val)
		case float64, bool:
			s = fmt.Sprint(val)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resourceList(v any) []domain.Resource {
	out := []domain.Resource{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		switch val := item.(type) {
		case map[string]any:
			title := stringValue(val["title"])
			if title == "" {
				title = "Resource"
			}
			out = append(out, domain.Resource{Title: title, URL: stringValue(val["url"])})
		case string:
			if s := strings.TrimSpace(val); s != "" {
				out = append(out, domain.Resource{Title: s})
			}
		}
	}
	return out
}
