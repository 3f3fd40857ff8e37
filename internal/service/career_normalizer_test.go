package service

import (
	"fmt"
	"strings"
	"testing"

	"careerpath/internal/domain"
)

func recsJSON(careers ...string) string {
	items := make([]string, 0, len(careers))
	for _, c := range careers {
		items = append(items, fmt.Sprintf(`{"career":%q,"score":8,"reason":"r","benefits":"b","opportunities":"o",
"sub_careers":["x"],"getting_started":["g1","g2","g3"],"resources":[{"title":"t","url":"https://u"}],
"interview_prep":["i1","i2"],"how_to_apply":["h1","h2"]}`, c))
	}
	return `{"recommendations":[` + strings.Join(items, ",") + `]}`
}

func TestResponseNormalizer_ValidResponse(t *testing.T) {
	n := NewResponseNormalizer("gemini-1.5-flash", "v1")
	res := n.Normalize(recsJSON("Data Scientist", "ML Engineer", "AI Product Manager"), true)
	if !res.OK() {
		t.Fatalf("expected success, got %s: %v", res.Reason, res.Err)
	}
	if len(res.Recommendations) != 3 {
		t.Fatalf("expected 3, got %d", len(res.Recommendations))
	}
	for _, r := range res.Recommendations {
		if r.GenerationSource != domain.SourceExternal || r.ModelIdentifier != "gemini-1.5-flash" || r.PromptVersion != "v1" {
			t.Fatalf("bad provenance: %+v", r)
		}
		if len(r.GettingStarted) != 3 || r.Resources[0].URL != "https://u" {
			t.Fatalf("model action plan should be kept: %+v", r)
		}
	}
}

func TestResponseNormalizer_TruncatesToThree(t *testing.T) {
	n := NewResponseNormalizer("m", "v1")
	res := n.Normalize(recsJSON("A Engineer", "B Engineer", "C Engineer", "D Engineer", "E Engineer"), true)
	if got := careerNames(res.Recommendations); len(got) != 3 || got[0] != "A Engineer" || got[2] != "C Engineer" {
		t.Fatalf("expected first three in order, got %v", got)
	}
}

func TestResponseNormalizer_StripsFencesAndProse(t *testing.T) {
	n := NewResponseNormalizer("m", "v1")

	fenced := "```json\n" + recsJSON("Product Manager") + "\n```"
	if res := n.Normalize(fenced, true); !res.OK() {
		t.Fatalf("fenced response should parse: %v", res.Err)
	}

	prose := "Sure! Here you go:\n" + recsJSON("Product Manager") + "\nGood luck."
	if res := n.Normalize(prose, true); !res.OK() {
		t.Fatalf("response with prose should parse: %v", res.Err)
	}
}

func TestResponseNormalizer_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FailureReason
	}{
		{"not json", "I cannot help with that", ReasonInvalidJSON},
		{"truncated", `{"recommendations":[{"career":"X"`, ReasonInvalidJSON},
		{"missing key", `{"careers":[]}`, ReasonInvalidShape},
		{"not a list", `{"recommendations":"Data Scientist"}`, ReasonInvalidShape},
		{"empty list", `{"recommendations":[]}`, ReasonEmptyList},
		{"no objects", `{"recommendations":["Data Scientist", 3]}`, ReasonEmptyList},
	}

	n := NewResponseNormalizer("m", "v1")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := n.Normalize(tt.raw, true)
			if res.OK() {
				t.Fatalf("expected rejection")
			}
			if res.Reason != tt.want {
				t.Fatalf("reason = %s, want %s (err=%v)", res.Reason, tt.want, res.Err)
			}
			if len(res.Recommendations) != 0 {
				t.Fatalf("rejection must not carry recommendations")
			}
		})
	}
}

func TestResponseNormalizer_TechnicalFilter(t *testing.T) {
	n := NewResponseNormalizer("m", "v1")

	res := n.Normalize(recsJSON("Data Scientist", "Content Strategist", "ML Engineer", "Retail Manager"), false)
	got := careerNames(res.Recommendations)
	if len(got) != 2 || got[0] != "Content Strategist" || got[1] != "Retail Manager" {
		t.Fatalf("technical careers should be filtered, got %v", got)
	}

	res = n.Normalize(recsJSON("Data Scientist", "ML Engineer"), false)
	if len(res.Recommendations) != 2 {
		t.Fatalf("filter that removes everything keeps the original list, got %v", careerNames(res.Recommendations))
	}

	res = n.Normalize(recsJSON("Data Scientist", "Content Strategist"), true)
	if len(res.Recommendations) != 2 {
		t.Fatalf("technical users are not filtered")
	}

	res = n.Normalize(recsJSON("Engineering Manager", "MLOps Specialist", "Email Marketing Lead", "Community Manager"), false)
	got = careerNames(res.Recommendations)
	if len(got) != 2 || got[0] != "Email Marketing Lead" || got[1] != "Community Manager" {
		t.Fatalf("stem variants should be filtered and email kept, got %v", got)
	}
}

func TestIsTechnicalCareer(t *testing.T) {
	tests := map[string]bool{
		"Software Engineering Lead": true,
		"Web Developers Advocate":   true,
		"Development Coordinator":   true,
		"MLOps Specialist":          true,
		"AI Ethics Lead":            true,
		"Data Steward":              true,
		"Email Marketing Lead":      false,
		"Database Administrator":    false,
		"Community Manager":         false,
		"Career Coach":              false,
	}
	for name, want := range tests {
		if got := isTechnicalCareer(name); got != want {
			t.Fatalf("isTechnicalCareer(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCoerceScoreExtremeValues(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{1e300, domain.MaxScore},
		{-1e300, domain.MinScore},
		{9.4, 9},
		{"8", 8},
		{"n/a", defaultExternalScore},
		{nil, defaultExternalScore},
	}
	for _, tt := range tests {
		if got := coerceScore(tt.in); got != tt.want {
			t.Fatalf("coerceScore(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResponseNormalizer_CoercesEntries(t *testing.T) {
	raw := `{"recommendations":[
		{"career":"technical writer","score":"12","sub_roles":["Docs Engineer"],"getting_started":"read docs",
		 "resources":["Write the Docs",{"url":"https://x"},42],"interview_prep":[1,"",true]},
		{"score":2.6},
		{"career":"UX Researcher","score":null,"sub_careers":null}
	]}`

	res := NewResponseNormalizer("m", "v1").Normalize(raw, true)
	if !res.OK() || len(res.Recommendations) != 3 {
		t.Fatalf("expected 3 coerced entries, got %+v", res)
	}

	first := res.Recommendations[0]
	if first.Career != "Technical Writer" {
		t.Fatalf("lowercase career should be title cased, got %q", first.Career)
	}
	if first.Score != domain.MaxScore {
		t.Fatalf("score should clamp to %d, got %d", domain.MaxScore, first.Score)
	}
	if len(first.SubCareers) != 1 || first.SubCareers[0] != "Docs Engineer" {
		t.Fatalf("sub_roles should be accepted: %v", first.SubCareers)
	}
	if len(first.Resources) != 2 || first.Resources[0].Title != "Write the Docs" || first.Resources[1].Title != "Resource" {
		t.Fatalf("resources not coerced: %+v", first.Resources)
	}
	if len(first.InterviewPrep) != 2 || first.InterviewPrep[0] != "1" || first.InterviewPrep[1] != "true" {
		t.Fatalf("scalars should become text: %v", first.InterviewPrep)
	}

	writerPlan := ActionPlanFor("Technical Writer")
	if len(first.GettingStarted) != len(writerPlan.GettingStarted) || first.GettingStarted[0] != writerPlan.GettingStarted[0] {
		t.Fatalf("non-list getting_started should be backfilled from catalog: %v", first.GettingStarted)
	}

	second := res.Recommendations[1]
	if second.Career != "Career" || second.Score != domain.MinScore {
		t.Fatalf("missing career/low score not coerced: %+v", second)
	}
	if second.SubCareers == nil || len(second.SubCareers) != 0 {
		t.Fatalf("missing sub_careers should be empty, got %v", second.SubCareers)
	}
	if len(second.HowToApply) == 0 || len(second.Resources) == 0 {
		t.Fatalf("action plan should be backfilled: %+v", second)
	}

	third := res.Recommendations[2]
	if third.Career != "UX Researcher" || third.Score != 7 {
		t.Fatalf("expected default score 7 and untouched name, got %+v", third)
	}
}
