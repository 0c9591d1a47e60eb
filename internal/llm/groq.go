package llm

type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string, opts ...Option) *GroqProvider {
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible("groq", "https://api.groq.com/openai/v1", apiKey, model, opts),
	}
}
