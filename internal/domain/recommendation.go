package domain

import (
	"fmt"
	"strings"
	"time"
)

// Recommendation es la recomendación persistida de un cuestionario.
type Recommendation struct {
	ID               string     `json:"id"`
	QuestionnaireID  string     `json:"questionnaire_id"`
	CareerName       string     `json:"career_name"`
	Score            int        `json:"score"`
	Explanation      string     `json:"explanation"`
	GettingStarted   []string   `json:"getting_started"`
	Resources        []Resource `json:"resources"`
	InterviewPrep    []string   `json:"interview_prep"`
	HowToApply       []string   `json:"how_to_apply"`
	GenerationSource string     `json:"generation_source"`
	ModelIdentifier  string     `json:"model_identifier"`
	PromptVersion    string     `json:"prompt_version"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

func (r Recommendation) IsDeleted() bool {
	return r.DeletedAt != nil
}

// Explanation es la vista estructurada del texto "Why:/Benefits:/..." guardado.
type Explanation struct {
	Why           string   `json:"why"`
	Benefits      string   `json:"benefits"`
	Opportunities string   `json:"opportunities"`
	SubPaths      []string `json:"sub_paths"`
}

// BuildExplanation serializa razón, beneficios, oportunidades y sub-carreras en el formato de líneas.
func BuildExplanation(c CareerRecommendation) string {
	reason := strings.TrimSpace(c.Reason)
	if reason == "" {
		reason = "Why not provided."
	}
	benefits := strings.TrimSpace(c.Benefits)
	if benefits == "" {
		benefits = "Benefits not provided."
	}
	opportunities := strings.TrimSpace(c.Opportunities)
	if opportunities == "" {
		opportunities = "Opportunities not provided."
	}
	return fmt.Sprintf(
		"Why: %s\nBenefits: %s\nEmployment opportunities: %s\nRelated sub-paths: %s",
		reason,
		benefits,
		opportunities,
		strings.Join(c.SubCareers, ", "),
	)
}

// ParseExplanation interpreta el texto guardado; líneas desconocidas se ignoran.
func ParseExplanation(text string) Explanation {
	parsed := Explanation{SubPaths: []string{}}
	if text == "" {
		return parsed
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(line, "Why:"):
			parsed.Why = strings.TrimSpace(strings.TrimPrefix(line, "Why:"))
		case strings.HasPrefix(lower, "benefits:"):
			parsed.Benefits = afterColon(line)
		case strings.HasPrefix(lower, "employment opportunities:"):
			parsed.Opportunities = afterColon(line)
		case strings.HasPrefix(lower, "related sub-paths:"):
			for _, s := range strings.Split(afterColon(line), ",") {
				if s = strings.TrimSpace(s); s != "" {
					parsed.SubPaths = append(parsed.SubPaths, s)
				}
			}
		}
	}
	return parsed
}

func afterColon(line string) string {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(rest)
}

// Dashboard agrupa recomendaciones activas y la papelera.
type Dashboard struct {
	Recommendations []Recommendation `json:"recommendations"`
	RecycleBin      []Recommendation `json:"recycle_bin"`
}
