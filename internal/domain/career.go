package domain

type GenerationSource string

const (
	SourceHeuristic GenerationSource = "heuristic"
	SourceExternal  GenerationSource = "external"
)

const (
	MinScore = 6
	MaxScore = 10

	// MaxRecommendations es el tope de cada resultado del motor.
	MaxRecommendations = 3
)

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ActionPlan agrupa la guía práctica que acompaña cada carrera.
type ActionPlan struct {
	GettingStarted []string   `json:"getting_started"`
	Resources      []Resource `json:"resources"`
	InterviewPrep  []string   `json:"interview_prep"`
	HowToApply     []string   `json:"how_to_apply"`
}

// Clone devuelve una copia profunda para que nadie comparta slices del catálogo.
func (p ActionPlan) Clone() ActionPlan {
	return ActionPlan{
		GettingStarted: CloneStrings(p.GettingStarted),
		Resources:      append(make([]Resource, 0, len(p.Resources)), p.Resources...),
		InterviewPrep:  CloneStrings(p.InterviewPrep),
		HowToApply:     CloneStrings(p.HowToApply),
	}
}

// CareerRecommendation es la unidad de salida del motor de recomendaciones.
type CareerRecommendation struct {
	Career           string           `json:"career"`
	Score            int              `json:"score"`
	Reason           string           `json:"reason"`
	Benefits         string           `json:"benefits"`
	Opportunities    string           `json:"opportunities"`
	SubCareers       []string         `json:"sub_careers"`
	GettingStarted   []string         `json:"getting_started"`
	Resources        []Resource       `json:"resources"`
	InterviewPrep    []string         `json:"interview_prep"`
	HowToApply       []string         `json:"how_to_apply"`
	GenerationSource GenerationSource `json:"generation_source"`
	ModelIdentifier  string           `json:"model_identifier"`
	PromptVersion    string           `json:"prompt_version"`
}

// ApplyPlan copia el plan de acción sobre la recomendación.
func (r *CareerRecommendation) ApplyPlan(p ActionPlan) {
	p = p.Clone()
	r.GettingStarted = p.GettingStarted
	r.Resources = p.Resources
	r.InterviewPrep = p.InterviewPrep
	r.HowToApply = p.HowToApply
}

// Clone devuelve una copia profunda.
func (r CareerRecommendation) Clone() CareerRecommendation {
	out := r
	out.SubCareers = CloneStrings(r.SubCareers)
	out.ApplyPlan(ActionPlan{
		GettingStarted: r.GettingStarted,
		Resources:      r.Resources,
		InterviewPrep:  r.InterviewPrep,
		HowToApply:     r.HowToApply,
	})
	return out
}

// RecommendationSet es el sobre {"recommendations": [...]} que consume la capa HTTP.
type RecommendationSet struct {
	Recommendations []CareerRecommendation `json:"recommendations"`
}

// CloneStrings copia un slice y nunca devuelve nil.
func CloneStrings(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}

// ClampScore fuerza el rango [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
