package chat

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/varaher/prana/internal/services/chat/models"
)

const userContextTemplate = `%s

User Context:
- Name: %s
- Role: %s
- Known conditions: %s
- Known allergies: %s`

// Compose builds the outbound turn sequence for one upstream submission.
//
// The composed system turn replaces position 0 of the caller's conversation;
// by convention the caller's first turn is a greeting placeholder and is
// discarded. All remaining turns are forwarded unchanged, with roles
// restricted to user/assistant. Pure function of its inputs.
func Compose(messages []models.Message, systemPrompt string, userContext *models.UserContext) ([]openai.ChatCompletionMessage, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	outbound := make([]openai.ChatCompletionMessage, 0, len(messages))
	outbound = append(outbound, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: composeSystemTurn(systemPrompt, userContext),
	})

	for _, msg := range messages[1:] {
		role := openai.ChatMessageRoleUser
		if msg.Role == openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		outbound = append(outbound, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	return outbound, nil
}

func composeSystemTurn(systemPrompt string, userContext *models.UserContext) string {
	name := "Unknown"
	role := "layperson"
	conditions := "None recorded"
	allergies := "None recorded"

	if userContext != nil {
		if userContext.Name != "" {
			name = userContext.Name
		}
		if userContext.Role != "" {
			role = userContext.Role
		}
		if len(userContext.Conditions) > 0 {
			conditions = strings.Join(userContext.Conditions, ", ")
		}
		if len(userContext.Allergies) > 0 {
			allergies = strings.Join(userContext.Allergies, ", ")
		}
	}

	return fmt.Sprintf(userContextTemplate, systemPrompt, name, role, conditions, allergies)
}
