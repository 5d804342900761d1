package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ornolfur/spyrja/internal/model"
)

func testVoiceConfig(baseURL string) model.VoiceConfig {
	return model.VoiceConfig{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Timeout:  5 * time.Second,
	}
}

func TestOpenAIProvider_Polish_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:      "chatcmpl-123",
			Object:  "chat.completion",
			Model:   "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "Már Guðmundsson er seðlabankastjóri Íslands.",
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(testVoiceConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	polished, err := provider.Polish(context.Background(),
		"hver er Már Guðmundsson", "Már Guðmundsson er seðlabankastjóri.")
	if err != nil {
		t.Fatalf("Polish failed: %v", err)
	}
	if polished != "Már Guðmundsson er seðlabankastjóri Íslands." {
		t.Errorf("Unexpected polished answer: %s", polished)
	}
}

func TestOpenAIProvider_Polish_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(testVoiceConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Polish(context.Background(), "q", "a"); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestOpenAIProvider_Polish_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "  "}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(testVoiceConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Polish(context.Background(), "q", "a"); err == nil {
		t.Fatal("Expected error for empty response, got nil")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(model.VoiceConfig{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("empty provider name should disable polishing, got %v, %v", p, err)
	}

	if _, err := NewProvider(model.VoiceConfig{Provider: "skynet"}); err == nil {
		t.Error("unknown provider should be rejected")
	}

	if _, err := NewProvider(model.VoiceConfig{Provider: "openai"}); err == nil {
		t.Error("openai without an API key should be rejected")
	}

	p, err = NewProvider(model.VoiceConfig{Provider: "openai", APIKey: "k"})
	if err != nil || p == nil || p.Name() != "openai" {
		t.Errorf("unexpected provider: %v, %v", p, err)
	}
}

func TestOpenAIProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o-mini"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(testVoiceConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be true")
	}

	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if provider.IsAvailable(context.Background()) {
		t.Error("Expected available to be false on error")
	}
}
