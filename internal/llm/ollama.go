package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultOllamaHost = "http://localhost:11434"

type OllamaProvider struct {
	host       string
	model      string
	httpClient *http.Client
}

func NewOllamaProvider(host, model string, opts ...Option) *OllamaProvider {
	if host == "" {
		host = DefaultOllamaHost
	}
	o := buildOptions(host, opts)
	return &OllamaProvider{
		host:       strings.TrimSuffix(o.baseURL, "/"),
		model:      model,
		httpClient: o.httpClient,
	}
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}

// Host returns the server root the provider talks to
func (o *OllamaProvider) Host() string {
	return o.host
}

func (o *OllamaProvider) Ping(ctx context.Context) error {
	if err := doJSON(ctx, o.httpClient, o.Name(), http.MethodGet, o.host+"/api/tags", nil, nil, nil); err != nil {
		return fmt.Errorf("cannot connect to Ollama at %s: %w", o.host, err)
	}
	return nil
}

// OllamaModel is one entry of GET /api/tags
type OllamaModel struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
}

type ollamaTagsResponse struct {
	Models []OllamaModel `json:"models"`
}

// ListModels returns the models installed on the Ollama server
func (o *OllamaProvider) ListModels(ctx context.Context) ([]OllamaModel, error) {
	var resp ollamaTagsResponse
	if err := doJSON(ctx, o.httpClient, o.Name(), http.MethodGet, o.host+"/api/tags", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("cannot list models at %s: %w", o.host, err)
	}
	return resp.Models, nil
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	DoneReason      string        `json:"done_reason,omitempty"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

func (o *OllamaProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	ollamaReq := ollamaChatRequest{
		Model:    model,
		Messages: convertMessages(req.Messages),
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}

	var ollamaResp ollamaChatResponse
	if err := doJSON(ctx, o.httpClient, o.Name(), http.MethodPost, o.host+"/api/chat", nil, ollamaReq, &ollamaResp); err != nil {
		return nil, err
	}

	return &CompletionResponse{
		Content:      ollamaResp.Message.Content,
		Model:        ollamaResp.Model,
		FinishReason: ollamaResp.DoneReason,
		Usage: Usage{
			PromptTokens:     ollamaResp.PromptEvalCount,
			CompletionTokens: ollamaResp.EvalCount,
			TotalTokens:      ollamaResp.PromptEvalCount + ollamaResp.EvalCount,
		},
	}, nil
}

func convertMessages(msgs []Message) []ollamaMessage {
	result := make([]ollamaMessage, len(msgs))
	for i, m := range msgs {
		result[i] = ollamaMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return result
}
