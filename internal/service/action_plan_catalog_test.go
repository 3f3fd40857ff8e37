package service

import (
	"reflect"
	"testing"

	"careerpath/internal/domain"
)

func TestActionPlanForMatchesArchetypes(t *testing.T) {
	tests := []struct {
		career    string
		archetype string
	}{
		{"Data Scientist", "data scientist"},
		{"senior DATA SCIENCE lead", "data scientist"},
		{"Machine Learning Engineer", "ml engineer"},
		{"MLOps Engineer", "mlops engineer"},
		{"AI Product Manager", "product manager"},
		{"Technical Writer (AI)", "technical writer"},
	}
	for _, tt := range tests {
		t.Run(tt.career, func(t *testing.T) {
			got := ActionPlanFor(tt.career)
			want := planFor(t, tt.archetype)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("expected %s plan for %q", tt.archetype, tt.career)
			}
		})
	}
}

func TestActionPlanForGenericFallback(t *testing.T) {
	for _, career := range []string{"", "Business Analyst / Strategy Analyst", "Chef"} {
		if got := ActionPlanFor(career); !reflect.DeepEqual(got, genericActionPlan) {
			t.Fatalf("expected generic plan for %q", career)
		}
	}
}

func TestActionPlanCatalogShape(t *testing.T) {
	for _, e := range append(actionPlanCatalog, actionPlanEntry{archetype: "generic", plan: genericActionPlan}) {
		p := e.plan
		if n := len(p.GettingStarted); n < 3 || n > 4 {
			t.Fatalf("%s: getting_started has %d items", e.archetype, n)
		}
		if n := len(p.Resources); n < 2 || n > 4 {
			t.Fatalf("%s: resources has %d items", e.archetype, n)
		}
		if n := len(p.InterviewPrep); n < 2 || n > 3 {
			t.Fatalf("%s: interview_prep has %d items", e.archetype, n)
		}
		if n := len(p.HowToApply); n != 2 {
			t.Fatalf("%s: how_to_apply has %d items", e.archetype, n)
		}
	}
}

func TestActionPlanForReturnsCopy(t *testing.T) {
	plan := ActionPlanFor("Data Scientist")
	plan.GettingStarted[0] = "mutated"
	plan.Resources[0].URL = "mutated"
	again := ActionPlanFor("Data Scientist")
	if again.GettingStarted[0] == "mutated" || again.Resources[0].URL == "mutated" {
		t.Fatalf("catalog entries must not be shared")
	}
}

func planFor(t *testing.T, archetype string) domain.ActionPlan {
	t.Helper()
	for _, e := range actionPlanCatalog {
		if e.archetype == archetype {
			return e.plan
		}
	}
	t.Fatalf("unknown archetype %s", archetype)
	return domain.ActionPlan{}
}
