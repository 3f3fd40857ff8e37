package domain

import "testing"

func TestBuildAndParseExplanation(t *testing.T) {
	rec := CareerRecommendation{
		Reason:        "Strong data interest detected.",
		Benefits:      "High demand.",
		Opportunities: "Tech, finance.",
		SubCareers:    []string{"ML Engineer", "Data Analyst"},
	}
	text := BuildExplanation(rec)
	got := ParseExplanation(text)
	if got.Why != "Strong data interest detected." {
		t.Fatalf("unexpected why %q", got.Why)
	}
	if got.Benefits != "High demand." || got.Opportunities != "Tech, finance." {
		t.Fatalf("unexpected parse %+v", got)
	}
	if len(got.SubPaths) != 2 || got.SubPaths[1] != "Data Analyst" {
		t.Fatalf("unexpected sub paths %+v", got.SubPaths)
	}
}

func TestBuildExplanationDefaults(t *testing.T) {
	got := ParseExplanation(BuildExplanation(CareerRecommendation{}))
	if got.Why != "Why not provided." || got.Benefits != "Benefits not provided." {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if len(got.SubPaths) != 0 {
		t.Fatalf("expected no sub paths, got %+v", got.SubPaths)
	}
}

func TestParseExplanationEmpty(t *testing.T) {
	got := ParseExplanation("")
	if got.Why != "" || got.SubPaths == nil {
		t.Fatalf("expected zero explanation with empty sub paths, got %+v", got)
	}
}

func TestClampScore(t *testing.T) {
	cases := map[int]int{0: 6, 6: 6, 8: 8, 10: 10, 42: 10, -3: 6}
	for in, want := range cases {
		if got := ClampScore(in); got != want {
			t.Fatalf("ClampScore(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestQuestionnaireInputFromMapMissingKeys(t *testing.T) {
	in := QuestionnaireInputFromMap(map[string]string{"skills": "python"})
	if in.Skills != "python" || in.Interests != "" || in.PreferredWorkStyle != "" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestActionPlanCloneIsDeep(t *testing.T) {
	p := ActionPlan{GettingStarted: []string{"a"}, Resources: []Resource{{Title: "t"}}}
	c := p.Clone()
	c.GettingStarted[0] = "b"
	c.Resources[0].Title = "x"
	if p.GettingStarted[0] != "a" || p.Resources[0].Title != "t" {
		t.Fatalf("clone shares memory with original")
	}
	if c.InterviewPrep == nil || c.HowToApply == nil {
		t.Fatalf("clone must not produce nil slices")
	}
}
