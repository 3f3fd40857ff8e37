package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPClientGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"recommendations\":[]}"}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", "gpt-test", time.Second, zap.NewNop())
	out, err := c.Generate(context.Background(), "hola")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != `{"recommendations":[]}` {
		t.Fatalf("unexpected output %q", out)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "gpt-test" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "hola" {
		t.Fatalf("unexpected request %+v", gotReq)
	}
}

func TestHTTPClientGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", "gpt-test", time.Second, nil)
	_, err := c.Generate(context.Background(), "hola")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status error 429, got %v", err)
	}
}

func TestHTTPClientGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", "gpt-test", time.Second, nil)
	if _, err := c.Generate(context.Background(), "hola"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestHTTPClientGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", "gpt-test", 50*time.Millisecond, nil)
	if _, err := c.Generate(context.Background(), "hola"); err == nil {
		t.Fatalf("expected timeout error")
	}
}
