package core

const (
	AppName       = "FlyerAgent"
	AppUserAgent  = "FlyerAgent/0.1"
	AppRepository = "https://github.com/StackOverflowed512/flyer-agent"
	AppVersion    = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Greeting is the first assistant turn every transport shows before the visitor speaks.
const Greeting = "Hello! I'm your AI Product Assistant. How can I help you with your business requirements today?"
