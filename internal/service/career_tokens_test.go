package service

import "testing"

func TestExtractTokens(t *testing.T) {
	tokens := extractTokens("Data-Scientist, Python & SQL\n(ML/AI) 10 years")
	for _, want := range []string{"data", "scientist", "python", "sql", "ml", "ai", "years"} {
		if !tokens.has(want) {
			t.Fatalf("expected token %q in %v", want, tokens)
		}
	}
	if tokens.has("10") {
		t.Fatalf("digits must not be tokens")
	}
}

func TestExtractTokensWholeWordsOnly(t *testing.T) {
	tokens := extractTokens("candidate for marketing roles")
	if tokens.has("data") {
		t.Fatalf("substring of candidate must not produce data token")
	}
	if !tokens.has("candidate") || !tokens.has("marketing") {
		t.Fatalf("unexpected tokens %v", tokens)
	}
}

func TestExtractTokensEmpty(t *testing.T) {
	if got := extractTokens("  \n , . "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}
