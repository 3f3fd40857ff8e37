package domain

import (
	"strings"
	"time"
)

const (
	WorkStyleSolo  = "Solo"
	WorkStyleTeam  = "Team"
	WorkStyleMixed = "Mixed"
)

// IsValidWorkStyle acepta solo Solo, Team o Mixed.
func IsValidWorkStyle(s string) bool {
	switch s {
	case WorkStyleSolo, WorkStyleTeam, WorkStyleMixed:
		return true
	default:
		return false
	}
}

// QuestionnaireInput son las respuestas de un envío; no se retienen en el motor.
type QuestionnaireInput struct {
	Skills             string `json:"skills"`
	Interests          string `json:"interests"`
	Strengths          string `json:"strengths"`
	PreferredWorkStyle string `json:"preferred_work_style"`
	LongTermGoal       string `json:"long_term_goal"`
}

// QuestionnaireInputFromMap construye el input desde un mapa; claves ausentes quedan vacías.
func QuestionnaireInputFromMap(m map[string]string) QuestionnaireInput {
	return QuestionnaireInput{
		Skills:             m["skills"],
		Interests:          m["interests"],
		Strengths:          m["strengths"],
		PreferredWorkStyle: m["preferred_work_style"],
		LongTermGoal:       m["long_term_goal"],
	}
}

// FreeText concatena los campos de texto libre (el estilo de trabajo queda fuera).
func (q QuestionnaireInput) FreeText() string {
	return strings.Join([]string{q.Skills, q.Interests, q.Strengths, q.LongTermGoal}, "\n")
}

type Questionnaire struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	QuestionnaireInput
	CreatedAt time.Time `json:"created_at"`
}
