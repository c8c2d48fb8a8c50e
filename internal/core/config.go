package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetFlyersDir() string
	GetContextWindowSize() int
	IsTelegramSelected() bool
}

type ProviderConfig interface {
	GetModel() string
	GetProvider() string
	GetMistralAPIKey() string
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaBaseURL() string
	GetCustomOpenAIBaseURL() string
	GetCustomOpenAIAPIKey() string
}

type TelegramConfig interface {
	GetTelegramToken() string
}
