package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method  string
	path    string
	headers http.Header
	body    map[string]any
}

// newServer records the last request and answers with status and body.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.headers = r.Header.Clone()
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &c.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func enhanceRequest() *CompletionRequest {
	req := NewRequest("", "be brief", "button not work")
	req.MaxTokens = 300
	req.Temperature = 0.3
	return req
}

func TestOpenAIComplete(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"Fix the button."},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":4,"total_tokens":14}}`)

	p := NewOpenAIProvider("sk-test", "", WithBaseURL(srv.URL))
	resp, err := p.Complete(context.Background(), enhanceRequest())
	require.NoError(t, err)

	assert.Equal(t, "Fix the button.", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 14, resp.Usage.TotalTokens)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/chat/completions", got.path)
	assert.Equal(t, "Bearer sk-test", got.headers.Get("Authorization"))
	assert.Equal(t, "gpt-4o-mini", got.body["model"])
	assert.EqualValues(t, 300, got.body["max_tokens"])
	msgs := got.body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "button not work", msgs[1].(map[string]any)["content"])
}

func TestOpenAICompatibleNames(t *testing.T) {
	assert.Equal(t, "groq", NewGroqProvider("k", "").Name())
	assert.Equal(t, "openrouter", NewOpenRouterProvider("k", "").Name())
	assert.Equal(t, "custom", NewCustomProvider("http://localhost:1234/v1", "", "m").Name())
	assert.Equal(t, "https://api.groq.com/openai/v1", NewGroqProvider("k", "").baseURL)
}

func TestCustomProviderOmitsAuthWithoutKey(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`)

	p := NewCustomProvider(srv.URL+"/", "", "local-model")
	_, err := p.Complete(context.Background(), enhanceRequest())
	require.NoError(t, err)
	assert.Empty(t, got.headers.Get("Authorization"))
	assert.Equal(t, "local-model", got.body["model"])
}

func TestOpenAIEmptyChoicesIsNotAnError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"choices":[]}`)

	resp, err := NewOpenAIProvider("k", "", WithBaseURL(srv.URL)).Complete(context.Background(), enhanceRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}

func TestAnthropicComplete(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"content":[{"type":"text","text":"Rewritten."}],"stop_reason":"end_turn","usage":{"input_tokens":7,"output_tokens":2}}`)

	p := NewAnthropicProvider("ant-key", "", WithBaseURL(srv.URL))
	resp, err := p.Complete(context.Background(), enhanceRequest())
	require.NoError(t, err)

	assert.Equal(t, "Rewritten.", resp.Content)
	assert.Equal(t, 9, resp.Usage.TotalTokens)
	assert.Equal(t, "/messages", got.path)
	assert.Equal(t, "ant-key", got.headers.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, got.headers.Get("anthropic-version"))
	assert.Equal(t, "be brief", got.body["system"])
	msgs := got.body["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestAnthropicPing(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{}`)
	assert.NoError(t, NewAnthropicProvider("k", "", WithBaseURL(srv.URL)).Ping(context.Background()))

	srv, _ = newServer(t, http.StatusUnauthorized, `{}`)
	assert.EqualError(t, NewAnthropicProvider("k", "", WithBaseURL(srv.URL)).Ping(context.Background()), "invalid API key")
}

func TestGeminiComplete(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Gemini says hi"}]},"finishReason":"STOP"}]}`)

	p := NewGeminiProvider("g-key", "gemini-1.5-flash", WithBaseURL(srv.URL))
	resp, err := p.Complete(context.Background(), enhanceRequest())
	require.NoError(t, err)

	assert.Equal(t, "Gemini says hi", resp.Content)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", got.path)
	assert.Equal(t, "g-key", got.headers.Get("x-goog-api-key"))
	system := got.body["systemInstruction"].(map[string]any)
	assert.Equal(t, "be brief", system["parts"].([]any)[0].(map[string]any)["text"])
	assert.EqualValues(t, 300, got.body["generationConfig"].(map[string]any)["maxOutputTokens"])
}

func TestOllamaCompleteAndListModels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"models":[{"name":"llama3.2:latest"},{"name":"qwen2.5:7b"}]}`)
	})
	var chat map[string]any
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&chat))
		_, _ = io.WriteString(w, `{"model":"llama3.2:latest","message":{"role":"assistant","content":"Local answer"},"done":true}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:latest")
	require.NoError(t, p.Ping(context.Background()))

	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "qwen2.5:7b", models[1].Name)

	resp, err := p.Complete(context.Background(), enhanceRequest())
	require.NoError(t, err)
	assert.Equal(t, "Local answer", resp.Content)
	assert.Equal(t, false, chat["stream"])
	assert.Equal(t, "llama3.2:latest", chat["model"])
}

func TestStatusAndDecodeErrors(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `{"error":"overloaded"}`)
	_, err := NewOpenAIProvider("k", "", WithBaseURL(srv.URL)).Complete(context.Background(), enhanceRequest())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, se.Error(), "overloaded")

	srv, _ = newServer(t, http.StatusOK, `{not json`)
	_, err = NewAnthropicProvider("k", "", WithBaseURL(srv.URL)).Complete(context.Background(), enhanceRequest())
	assert.ErrorContains(t, err, "failed to decode anthropic response")
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantName string
		wantErr  error
	}{
		{name: "openai", settings: Settings{Provider: "openai", APIKey: "k"}, wantName: "openai"},
		{name: "anthropic", settings: Settings{Provider: "anthropic", APIKey: "k"}, wantName: "anthropic"},
		{name: "gemini", settings: Settings{Provider: "gemini", APIKey: "k"}, wantName: "gemini"},
		{name: "groq", settings: Settings{Provider: "groq", APIKey: "k"}, wantName: "groq"},
		{name: "openrouter", settings: Settings{Provider: "openrouter", APIKey: "k"}, wantName: "openrouter"},
		{name: "ollama needs no key", settings: Settings{Provider: "ollama"}, wantName: "ollama"},
		{name: "custom", settings: Settings{Provider: "custom", BaseURL: "http://x/v1"}, wantName: "custom"},
		{name: "missing key", settings: Settings{Provider: "openai"}, wantErr: ErrMissingAPIKey},
		{name: "unknown", settings: Settings{Provider: "skynet"}, wantErr: ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.settings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProviderDefaultsModel(t *testing.T) {
	p, err := NewProvider(Settings{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-20241022", p.(*AnthropicProvider).model)
}

func TestNewProviderCustomNeedsBaseURL(t *testing.T) {
	_, err := NewProvider(Settings{Provider: "custom"})
	assert.Error(t, err)
}
