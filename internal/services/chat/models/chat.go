package models

// Message is one turn of the conversation as submitted by the client.
// Insertion order is chronological and significant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserContext is the per-request snapshot of who is asking. It is supplied
// by the caller, used once to augment the system prompt, and never stored.
type UserContext struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"` // layperson or doctor
	Conditions []string `json:"conditions"`
	Allergies  []string `json:"allergies"`
}

// StreamRequest is the inbound body of the streaming chat endpoint.
type StreamRequest struct {
	Messages     []Message    `json:"messages" validate:"required,min=1"`
	SystemPrompt string       `json:"systemPrompt"`
	UserContext  *UserContext `json:"userContext,omitempty"`
}

// AnalyzeRequest is the inbound body of the non-streaming image endpoint.
type AnalyzeRequest struct {
	Image  string `json:"image" validate:"required"`
	Prompt string `json:"prompt"`
}

// AnalyzeResponse carries the single JSON reply of the image endpoint.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
