package llm

type Mistral struct {
	*OpenAICompatible
}

func NewMistral(apiKey, model string, opts ...Option) *Mistral {
	return &Mistral{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://api.mistral.ai",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}, opts...),
	}
}
