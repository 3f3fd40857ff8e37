package service

import (
	"fmt"
	"strings"

	"careerpath/internal/domain"
)

const careerPromptTemplate = `You are an expert career advisor for AI and technology roles.
Given this user's background, suggest exactly 3 careers.

Return ONLY valid JSON, without markdown or text before or after it, in this exact shape:
{"recommendations":[{"career":"...","score":8,"reason":"...","benefits":"...","opportunities":"...",
"sub_careers":["...","..."],
"getting_started":["...","...","..."],
"resources":[{"title":"...","url":"https://..."}],
"interview_prep":["...","..."],
"how_to_apply":["...","..."]}]}

Rules:
- "score" is an integer between 6 and 10.
- Every list must be present, even if short.
- Prefer roles that match the user's stated skills; do not suggest engineering roles to someone with no technical background.

Skills: %s
Interests: %s
Strengths: %s
Preferred work style: %s
Long-term goal: %s`

// BuildCareerPrompt arma el prompt para el modelo externo con los cinco campos del cuestionario.
func BuildCareerPrompt(input domain.QuestionnaireInput) string {
	return fmt.Sprintf(careerPromptTemplate,
		orNotProvided(input.Skills),
		orNotProvided(input.Interests),
		orNotProvided(input.Strengths),
		orNotProvided(input.PreferredWorkStyle),
		orNotProvided(input.LongTermGoal),
	)
}

func orNotProvided(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "not provided"
	}
	return s
}
