package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "GENAI_API_KEY", "LLM_TIMEOUT_SECONDS", "GENAI_MODEL", "RECOMMENDATIONS_PER_SUBMISSION")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.GenAIModel != "gemini-1.5-flash" {
		t.Fatalf("expected default model, got %q", cfg.GenAIModel)
	}
	if cfg.LLMTimeout() != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.LLMTimeout())
	}
	if cfg.ExternalEnabled() {
		t.Fatalf("expected external path disabled without credential")
	}
	if cfg.RecommendationsPerSubmission != 1 {
		t.Fatalf("expected 1 recommendation per submission, got %d", cfg.RecommendationsPerSubmission)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "key")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")
	t.Setenv("GENAI_MODEL", "gemini-2.0-flash")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.ExternalEnabled() {
		t.Fatalf("expected external path enabled")
	}
	if cfg.LLMTimeout() != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.LLMTimeout())
	}
	if cfg.GenAIModel != "gemini-2.0-flash" {
		t.Fatalf("unexpected model %q", cfg.GenAIModel)
	}
}
