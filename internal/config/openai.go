package config

// GetOpenAIKey returns the API key for the chat-completion provider
func GetOpenAIKey() string {
	return GetEnvOrDefault("OPENAI_KEY", "")
}

// GetOpenAIBaseURL returns an optional override for the provider endpoint,
// used to point the relay at a compatible hosted provider or a local stub
func GetOpenAIBaseURL() string {
	return GetEnvOrDefault("OPENAI_BASE_URL", "")
}

// GetChatModel returns the completion model the relay requests
func GetChatModel() string {
	return GetEnvOrDefault("CHAT_MODEL", "gpt-4o-mini")
}
