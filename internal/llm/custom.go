package llm

// CustomProvider targets a self-hosted OpenAI-compatible server such as
// LM Studio or vLLM. The API key is optional.
type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string, opts ...Option) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newOpenAICompatible("custom", baseURL, apiKey, model, opts),
	}
}
