package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JamalC77/penned-works/internal/config"
	apperrors "github.com/JamalC77/penned-works/pkg/errors"
)

// fakeProvider 伪造 Messages API，返回固定文本块并记录请求
type fakeProvider struct {
	t       *testing.T
	text    string
	status  int
	lastReq messagesRequest
}

func (f *fakeProvider) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			f.t.Errorf("path = %q, want /v1/messages", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			f.t.Errorf("X-Api-Key = %q, want %q", got, "test-key")
		}
		if got := r.Header.Get("Anthropic-Version"); got == "" {
			f.t.Error("Anthropic-Version header missing")
		}
		if err := json.NewDecoder(r.Body).Decode(&f.lastReq); err != nil {
			f.t.Errorf("decode request: %v", err)
		}

		status := f.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"type": "overloaded_error", "message": "try again"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": f.text}},
		})
	}
}

func newTestClient(t *testing.T, f *fakeProvider) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewClient(&config.AnthropicConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
}

func TestClient_GetWritingFeedback(t *testing.T) {
	f := &fakeProvider{t: t, text: "Strong opening, but the pacing drags."}
	c := newTestClient(t, f)

	got, err := c.GetWritingFeedback(context.Background(), "selected text", "full draft", "does this work?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Strong opening, but the pacing drags." {
		t.Errorf("feedback = %q", got)
	}
	if f.lastReq.Model != defaultModel {
		t.Errorf("model = %q, want %q", f.lastReq.Model, defaultModel)
	}
	if f.lastReq.MaxTokens != feedbackMaxTokens {
		t.Errorf("max_tokens = %d, want %d", f.lastReq.MaxTokens, feedbackMaxTokens)
	}
	if len(f.lastReq.Messages) != 1 || f.lastReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want single user message", f.lastReq.Messages)
	}
}

// 模型返回空内容时各模式落到各自的退化值。
func TestClient_EmptyResponseFallbacks(t *testing.T) {
	f := &fakeProvider{t: t, text: ""}
	c := newTestClient(t, f)
	ctx := context.Background()

	if got, err := c.GetWritingFeedback(ctx, "s", "", ""); err != nil || got != "Unable to generate feedback." {
		t.Errorf("feedback = %q, %v", got, err)
	}
	if got, err := c.GenerateFromDescription(ctx, "d", "", ""); err != nil || got != "Unable to generate content." {
		t.Errorf("generate = %q, %v", got, err)
	}
	if got, err := c.QuickAssist(ctx, "original text", AssistGrammar); err != nil || got != "original text" {
		t.Errorf("assist = %q, %v", got, err)
	}
}

func TestClient_ProviderError(t *testing.T) {
	f := &fakeProvider{t: t, status: http.StatusServiceUnavailable}
	c := newTestClient(t, f)

	_, err := c.GetWritingFeedback(context.Background(), "s", "", "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeLLMProviderError {
		t.Errorf("error code = %v, want CodeLLMProviderError", apperrors.AsAppError(err).Code)
	}
}

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient(&config.AnthropicConfig{})

	if c.Configured() {
		t.Error("Configured() = true without api key")
	}
	if _, err := c.GetWritingFeedback(context.Background(), "s", "", ""); !errors.Is(err, apperrors.ErrLLMNotConfigured) {
		t.Errorf("error = %v, want ErrLLMNotConfigured", err)
	}
}

func TestClient_ContinueStory(t *testing.T) {
	f := &fakeProvider{t: t, text: "NARRATIVE: The tide recedes.\nCHOICES:\n1. Follow the water\n2. Stay ashore"}
	c := newTestClient(t, f)

	result, err := c.ContinueStory(context.Background(), "story so far", "Follow the gulls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Narrative != "The tide recedes." {
		t.Errorf("narrative = %q", result.Narrative)
	}
	if len(result.Choices) != 2 {
		t.Errorf("len(choices) = %d, want 2", len(result.Choices))
	}
}
