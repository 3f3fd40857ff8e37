package service

import (
	"strings"

	"careerpath/internal/domain"
)

// ActionPlanCatalogVersion se incrementa cuando cambia el contenido curado.
const ActionPlanCatalogVersion = "2024-06"

type actionPlanEntry struct {
	archetype string
	patterns  []string
	plan      domain.ActionPlan
}

// Orden fijo: gana el primer patrón que aparezca en el nombre de la carrera.
var actionPlanCatalog = []actionPlanEntry{
	{
		archetype: "data scientist",
		patterns:  []string{"data scientist", "data science"},
		plan: domain.ActionPlan{
			GettingStarted: []string{
				"Refresh statistics fundamentals: distributions, hypothesis testing, regression.",
				"Get fluent with Python, pandas and SQL on real public datasets.",
				"Publish two end-to-end analysis projects with a clear business question.",
				"Learn one visualization tool well enough to tell a story with data.",
			},
			Resources: []domain.Resource{
				{Title: "Kaggle Learn", URL: "https://www.kaggle.com/learn"},
				{Title: "Python for Data Analysis (free online edition)", URL: "https://wesmckinney.com/book/"},
				{Title: "StatQuest", URL: "https://statquest.org"},
			},
			InterviewPrep: []string{
				"Practice SQL window functions and joins under time pressure.",
				"Prepare to explain one project: problem, data, method, impact, trade-offs.",
				"Review A/B testing, p-values and common metric pitfalls.",
			},
			HowToApply: []string{
				"Target analytics-heavy teams and link your portfolio at the top of the resume.",
				"Quantify impact in every bullet (revenue, time saved, accuracy gained).",
			},
		},
	},
	{
		archetype: "ml engineer",
		patterns:  []string{"machine learning", "ml engineer"},
		plan: domain.ActionPlan{
			GettingStarted: []string{
				"Train and evaluate classic models with scikit-learn before deep learning.",
				"Build one deep learning project with PyTorch and serve it behind an API.",
				"Learn experiment tracking and reproducible training pipelines.",
			},
			Resources: []domain.Resource{
				{Title: "fast.ai Practical Deep Learning", URL: "https://course.fast.ai"},
				{Title: "PyTorch Tutorials", URL: "https://pytorch.org/tutorials/"},
				{Title: "Made With ML", URL: "https://madewithml.com"},
			},
			InterviewPrep: []string{
				"Review bias/variance, regularization and evaluation metrics.",
				"Practice ML system design: data, features, training, serving, monitoring.",
				"Solve medium-level coding problems in Python.",
			},
			HowToApply: []string{
				"Show a deployed model with a short write-up of design decisions.",
				"Apply to product teams shipping ML features, not only research labs.",
			},
		},
	},
	{
		archetype: "mlops engineer",
		patterns:  []string{"mlops"},
		plan: domain.ActionPlan{
			GettingStarted: []string{
				"Containerize a model service with Docker and deploy it to a cloud provider.",
				"Automate training and deployment with a CI/CD pipeline.",
				"Add monitoring for latency, errors and data drift.",
			},
			Resources: []domain.Resource{
				{Title: "MLOps Zoomcamp", URL: "https://github.com/DataTalksClub/mlops-zoomcamp"},
				{Title: "Kubernetes Basics", URL: "https://kubernetes.io/docs/tutorials/kubernetes-basics/"},
			},
			InterviewPrep: []string{
				"Explain how you would roll back a bad model in production.",
				"Review infrastructure as code, observability and on-call practices.",
			},
			HowToApply: []string{
				"Highlight reliability and automation wins with concrete numbers.",
				"Target platform and infrastructure teams supporting data scientists.",
			},
		},
	},
	{
		archetype: "product manager",
		patterns:  []string{"product manager", "product owner"},
		plan: domain.ActionPlan{
			GettingStarted: []string{
				"Learn how ML products differ: data dependencies, uncertainty, evaluation.",
				"Write a one-page spec for an AI feature in a product you use.",
				"Run five user interviews and turn the findings into a prioritized roadmap.",
			},
			Resources: []domain.Resource{
				{Title: "Google PAIR Guidebook", URL: "https://pair.withgoogle.com/guidebook/"},
				{Title: "Lenny's Newsletter", URL: "https://www.lennysnewsletter.com"},
			},
			InterviewPrep: []string{
				"Practice product sense questions with a clear framework.",
				"Prepare metrics for an AI feature: quality, adoption, cost.",
			},
			HowToApply: []string{
				"Show a case study that connects a user problem to a shipped outcome.",
				"Look for associate PM or internal transfer paths in AI-first companies.",
			},
		},
	},
	{
		archetype: "technical writer",
		patterns:  []string{"technical writer", "writer"},
		plan: domain.ActionPlan{
			GettingStarted: []string{
				"Document an open-source AI library: a quickstart and one tutorial.",
				"Learn docs-as-code tooling (Markdown, Git, static site generators).",
				"Study API reference structure from well-known developer portals.",
			},
			Resources: []domain.Resource{
				{Title: "Google Technical Writing Courses", URL: "https://developers.google.com/tech-writing"},
				{Title: "Write the Docs", URL: "https://www.writethedocs.org"},
			},
			InterviewPrep: []string{
				"Prepare a writing sample and explain your editing decisions.",
				"Expect a timed exercise turning engineering notes into user docs.",
			},
			HowToApply: []string{
				"Build a public portfolio with three varied samples.",
				"Contribute docs PRs to projects used by the companies you target.",
			},
		},
	},
}

var genericActionPlan = domain.ActionPlan{
	GettingStarted: []string{
		"Pick one foundational course in the field and finish it within a month.",
		"Build a small portfolio project that shows the core skill of the role.",
		"Talk to three people already doing the job about their day-to-day.",
	},
	Resources: []domain.Resource{
		{Title: "Coursera", URL: "https://www.coursera.org"},
		{Title: "LinkedIn Learning", URL: "https://www.linkedin.com/learning/"},
	},
	InterviewPrep: []string{
		"Prepare STAR stories for teamwork, conflict and a failure.",
		"Research the company's products and how AI fits into them.",
	},
	HowToApply: []string{
		"Tailor your resume keywords to each job description.",
		"Ask for referrals from your network before applying cold.",
	},
}

// ActionPlanFor devuelve una copia del plan curado para la carrera (o el genérico).
func ActionPlanFor(career string) domain.ActionPlan {
	name := strings.ToLower(career)
	for _, entry := range actionPlanCatalog {
		for _, p := range entry.patterns {
			if strings.Contains(name, p) {
				return entry.plan.Clone()
			}
		}
	}
	return genericActionPlan.Clone()
}
