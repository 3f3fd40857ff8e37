package service

import "careerpath/internal/domain"

// HeuristicModelIdentifier marca las recomendaciones producidas por reglas locales.
const HeuristicModelIdentifier = "heuristic-rules"

// Presencia explícita de experiencia en software, ML o cloud.
var technicalSignalTokens = []string{
	"python", "java", "javascript", "typescript", "golang", "rust", "scala", "kotlin", "swift", "sql",
	"ml", "ai", "engineer", "engineering", "engineers", "developer", "software", "programming", "programmer", "coding",
	"backend", "frontend", "api", "apis", "linux", "algorithms",
	"cloud", "aws", "azure", "gcp", "kubernetes", "docker", "devops", "mlops",
	"tensorflow", "pytorch", "spark", "hadoop",
}

func hasTechnicalSignal(tokens tokenSet) bool {
	return tokens.hasAny(technicalSignalTokens)
}

// careerRule: si algún keyword aparece (y la señal técnica existe cuando se exige) se agrega template.
type careerRule struct {
	category          string
	keywords          []string
	requiresTechnical bool
	template          domain.CareerRecommendation
}

// El orden de la tabla es la prioridad de salida.
var careerRules = []careerRule{
	{
		category:          "data",
		keywords:          []string{"data", "analytics", "statistics", "statistical", "datasets", "pandas", "visualization", "tableau"},
		requiresTechnical: true,
		template: domain.CareerRecommendation{
			Career:        "Data Scientist",
			Score:         9,
			Reason:        "Strong data interest detected alongside technical skills.",
			Benefits:      "High demand, versatile across industries, strong pay.",
			Opportunities: "Tech, finance, healthcare, product analytics roles.",
			SubCareers:    []string{"ML Engineer", "Data Analyst"},
		},
	},
	{
		category:          "ml",
		keywords:          []string{"ml", "machine", "neural", "tensorflow", "pytorch", "nlp", "llm", "llms"},
		requiresTechnical: true,
		template: domain.CareerRecommendation{
			Career:        "Machine Learning Engineer",
			Score:         8,
			Reason:        "Machine learning keywords found.",
			Benefits:      "Impactful model deployment, work with modern stacks.",
			Opportunities: "Platform teams, product ML features, AI startups.",
			SubCareers:    []string{"Applied Scientist", "ML Platform Engineer"},
		},
	},
	{
		category: "product",
		keywords: []string{"product", "products", "roadmap", "roadmaps"},
		template: domain.CareerRecommendation{
			Career:        "AI Product Manager",
			Score:         8,
			Reason:        "Product focus noted.",
			Benefits:      "Blend of strategy and AI, cross-functional leadership.",
			Opportunities: "AI feature ownership, roadmap planning, GTM roles.",
			SubCareers:    []string{"AI Product Owner", "Technical Program Manager"},
		},
	},
	{
		category:          "ops",
		keywords:          []string{"ops", "mlops", "devops", "infrastructure", "deployment", "reliability"},
		requiresTechnical: true,
		template: domain.CareerRecommendation{
			Career:        "MLOps Engineer",
			Score:         7,
			Reason:        "Ops/MLOps inclination detected.",
			Benefits:      "Own reliability and scalability of AI systems.",
			Opportunities: "Infra teams, platform engineering, observability roles.",
			SubCareers:    []string{"Model Reliability Engineer", "Data Platform Engineer"},
		},
	},
	{
		category: "business",
		keywords: []string{"business", "sales", "selling", "customer", "customers", "client", "clients", "marketing", "consulting", "negotiation", "presales", "partnerships"},
		template: domain.CareerRecommendation{
			Career:        "AI Solutions / Sales Engineer",
			Score:         7,
			Reason:        "Customer-facing and business strengths detected.",
			Benefits:      "Bridge between customers and AI teams, strong earning potential.",
			Opportunities: "Pre-sales, solutions consulting, partner engineering.",
			SubCareers:    []string{"Solutions Architect", "Customer Success Engineer"},
		},
	},
	{
		category: "analysis",
		keywords: []string{"analysis", "analytical", "analyst", "analyze", "analyzing", "strategy", "strategic", "insights", "excel"},
		template: domain.CareerRecommendation{
			Career:        "Business Analyst / Strategy Analyst",
			Score:         7,
			Reason:        "Analytical and strategic thinking noted.",
			Benefits:      "Shape decisions with evidence, broad business exposure.",
			Opportunities: "Consulting, operations, AI adoption and transformation teams.",
			SubCareers:    []string{"Operations Analyst", "AI Strategy Consultant"},
		},
	},
	{
		category: "coordination",
		keywords: []string{"coordination", "coordinate", "coordinating", "coordinator", "organize", "organized", "organizing", "planning", "scheduling", "project", "projects", "logistics"},
		template: domain.CareerRecommendation{
			Career:        "Project / Program Coordinator",
			Score:         7,
			Reason:        "Coordination and organization strengths detected.",
			Benefits:      "Visible role keeping AI initiatives on track.",
			Opportunities: "PMO teams, delivery management, agency and consulting work.",
			SubCareers:    []string{"Scrum Master", "Technical Program Manager"},
		},
	},
	{
		category: "design",
		keywords: []string{"design", "designer", "designing", "ux", "ui", "usability", "figma", "prototyping", "research"},
		template: domain.CareerRecommendation{
			Career:        "AI UX Designer / Researcher",
			Score:         7,
			Reason:        "Design and user research interest noted.",
			Benefits:      "Make AI products understandable and trustworthy.",
			Opportunities: "Product design teams, conversational UX, research labs.",
			SubCareers:    []string{"Conversation Designer", "UX Researcher"},
		},
	},
	{
		category: "writing",
		keywords: []string{"writing", "writer", "write", "documentation", "docs", "content", "editing", "blogging", "storytelling", "communication"},
		template: domain.CareerRecommendation{
			Career:        "Technical Writer (AI)",
			Score:         7,
			Reason:        "Writing and communication strengths detected.",
			Benefits:      "Steady demand for clear docs around fast-moving AI tools.",
			Opportunities: "Developer relations, documentation teams, AI content studios.",
			SubCareers:    []string{"Developer Advocate", "Content Designer"},
		},
	},
}

// Se agregan (no reemplazan) cuando no matchea ninguna regla o no hay señal técnica.
var nonTechnicalDefaults = []domain.CareerRecommendation{
	{
		Career:        "AI Product Specialist",
		Score:         7,
		Reason:        "General AI interest assumed.",
		Benefits:      "Customer-facing, broad exposure to AI use-cases.",
		Opportunities: "Solutions engineering, customer success, sales enablement.",
		SubCareers:    []string{"Solutions Architect", "AI Implementation Consultant"},
	},
	{
		Career:        "Technical Writer",
		Score:         7,
		Reason:        "Clear communication is valued in every AI team.",
		Benefits:      "Low barrier to entry, remote-friendly, grows with the AI ecosystem.",
		Opportunities: "Documentation teams, developer relations, product education.",
		SubCareers:    []string{"Documentation Specialist", "Content Strategist"},
	},
	{
		Career:        "AI Project Coordinator",
		Score:         7,
		Reason:        "Organizational roles are a common entry point into AI teams.",
		Benefits:      "Exposure to the full AI delivery cycle without deep coding.",
		Opportunities: "PMO teams, consulting firms, AI transformation programs.",
		SubCareers:    []string{"Program Coordinator", "Delivery Manager"},
	},
	{
		Career:        "Business Analyst",
		Score:         7,
		Reason:        "Analytical business roles benefit from AI literacy.",
		Benefits:      "Broad business exposure and a path toward product or strategy.",
		Opportunities: "Operations, finance, consulting and AI adoption teams.",
		SubCareers:    []string{"Product Analyst", "Process Improvement Analyst"},
	},
}

// HeuristicClassifier evalúa la tabla de reglas sobre los tokens; es puro y seguro para uso concurrente.
type HeuristicClassifier struct {
	rules         []careerRule
	defaults      []domain.CareerRecommendation
	promptVersion string
}

func NewHeuristicClassifier(promptVersion string) HeuristicClassifier {
	return HeuristicClassifier{
		rules:         careerRules,
		defaults:      nonTechnicalDefaults,
		promptVersion: promptVersion,
	}
}

// Classify devuelve las recomendaciones en orden de prioridad, sin deduplicar entre categorías.
func (c HeuristicClassifier) Classify(tokens tokenSet) []domain.CareerRecommendation {
	technical := hasTechnicalSignal(tokens)

	var out []domain.CareerRecommendation
	for _, rule := range c.rules {
		if rule.requiresTechnical && !technical {
			continue
		}
		if !tokens.hasAny(rule.keywords) {
			continue
		}
		out = append(out, c.build(rule.template))
	}

	if len(out) == 0 || !technical {
		for _, d := range c.defaults {
			out = append(out, c.build(d))
		}
	}
	return out
}

func (c HeuristicClassifier) build(template domain.CareerRecommendation) domain.CareerRecommendation {
	rec := template.Clone()
	rec.Score = domain.ClampScore(rec.Score)
	rec.ApplyPlan(ActionPlanFor(rec.Career))
	rec.GenerationSource = domain.SourceHeuristic
	rec.ModelIdentifier = HeuristicModelIdentifier
	rec.PromptVersion = c.promptVersion
	return rec
}
