package evaluator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/promptsec/promptval/internal/validate"
)

func TestNew_ProviderSelection(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("XAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("GOOGLE_API_KEY", "test-key")

	tests := []struct {
		provider string
		wantName string
	}{
		{"openai", "openai"},
		{"xai", "xai"},
		{"anthropic", "anthropic"},
		{"gemini", "gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			ev, err := New(Options{Provider: tt.provider})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if ev.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", ev.Name(), tt.wantName)
			}
		})
	}
}

func TestNew_MissingKeyFailsAtConstruction(t *testing.T) {
	tests := []struct {
		provider string
		envKey   string
	}{
		{"openai", "OPENAI_API_KEY"},
		{"xai", "XAI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"gemini", "GOOGLE_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv(tt.envKey, "")
			_, err := New(Options{Provider: tt.provider})
			if err == nil || !strings.Contains(err.Error(), tt.envKey) {
				t.Errorf("err = %v, want missing %s error", err, tt.envKey)
			}
		})
	}
}

func TestNew_OpenAICompatibleNeedsBaseURL(t *testing.T) {
	if _, err := New(Options{Provider: "openai_compatible"}); err == nil {
		t.Error("openai_compatible without base URL should fail")
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Options{Provider: "bard"})
	if err == nil || !strings.Contains(err.Error(), "bard") {
		t.Errorf("err = %v, want unknown provider error naming it", err)
	}
}

func chatServer(t *testing.T, handler func(req chatRequest) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": handler(req)}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
}

func TestOpenAICompatible_Evaluate(t *testing.T) {
	var got chatRequest
	srv := chatServer(t, func(req chatRequest) string {
		got = req
		return `{"issues": [{"type": "completeness", "severity": "warning", "message": "vague"}], "fixed_text": "Task: be specific"}`
	})
	defer srv.Close()

	ev, err := New(Options{Provider: "openai_compatible", BaseURL: srv.URL, Model: "llama3", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	eval, err := ev.Evaluate(context.Background(), "Contact me at [REDACTED:EMAIL]")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(eval.Issues) != 1 || eval.Issues[0].Kind != validate.KindCompleteness {
		t.Errorf("issues = %+v", eval.Issues)
	}
	if !strings.Contains(eval.FixedText, "Task: be specific") {
		t.Errorf("fixed text = %q", eval.FixedText)
	}

	if got.Model != "llama3" {
		t.Errorf("model = %q, want llama3", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v, want system then user", got.Messages)
	}
	if !strings.Contains(got.Messages[1].Content, "[REDACTED:EMAIL]") {
		t.Errorf("user message lost the reviewed text: %q", got.Messages[1].Content)
	}
}

func TestXAI_SpeaksCompatibleDialect(t *testing.T) {
	t.Setenv("XAI_API_KEY", "test-key")

	var got chatRequest
	srv := chatServer(t, func(req chatRequest) string {
		got = req
		return `{"issues": [], "fixed_text": "Task: tightened"}`
	})
	defer srv.Close()

	ev, err := New(Options{Provider: "xai", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eval, err := ev.Evaluate(context.Background(), "review this")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !strings.Contains(eval.FixedText, "Task: tightened") {
		t.Errorf("fixed text = %q", eval.FixedText)
	}
	if got.Model != "grok-2-latest" {
		t.Errorf("model = %q, want the xai default", got.Model)
	}
}

func TestOpenAICompatible_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ev, err := New(Options{Provider: "openai_compatible", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = ev.Evaluate(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("err = %v, want status 429 surfaced", err)
	}
}

func TestOpenAICompatible_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can detect the client disconnect
		// and cancel r.Context(); otherwise this handler never returns.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ev, err := New(Options{Provider: "openai_compatible", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := ev.Evaluate(ctx, "x"); err == nil {
		t.Error("canceled request should return an error")
	}
}
