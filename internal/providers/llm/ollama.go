package llm

// Ollama talks to the OpenAI-compatible endpoint of a local Ollama server. No auth.
type Ollama struct {
	*OpenAICompatible
}

func NewOllama(baseURL, model string, opts ...Option) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: baseURL,
			Model:   model,
		}, opts...),
	}
}
