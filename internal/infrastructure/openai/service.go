package openai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/varaher/prana/internal/config"
	"github.com/varaher/prana/internal/services/chat"
)

// maxCompletionTokens caps one generated response. This is a resource
// protection limit, not a business rule.
const maxCompletionTokens = 2048

// Service wraps the hosted completion provider behind the chat.Provider
// capability so the relay never touches the SDK client directly.
type Service struct {
	client *openai.Client
	model  string
}

func NewService() *Service {
	log.Info().Msg("Initialising completion provider service")
	key := config.GetOpenAIKey()

	if key == "" {
		log.Warn().Msg("Completion provider not configured - OPENAI_KEY missing")
		return nil
	}

	cfg := openai.DefaultConfig(key)
	if base := config.GetOpenAIBaseURL(); base != "" {
		cfg.BaseURL = base
	}

	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  config.GetChatModel(),
	}
}

// StreamCompletion opens a streaming completion over the composed turns.
func (s *Service) StreamCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (chat.CompletionStream, error) {
	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: maxCompletionTokens,
		Stream:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open completion stream: %w", err)
	}
	return &completionStream{stream: stream}, nil
}

// Completion performs a single non-streaming completion.
func (s *Service) Completion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// completionStream adapts the SDK stream to the relay's fragment contract:
// Recv yields only non-empty content deltas and io.EOF on a clean end.
type completionStream struct {
	stream *openai.ChatCompletionStream
}

func (cs *completionStream) Recv() (string, error) {
	for {
		resp, err := cs.stream.Recv()
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		// Role-only and empty chunks carry no fragment
		if fragment := resp.Choices[0].Delta.Content; fragment != "" {
			return fragment, nil
		}
	}
}

func (cs *completionStream) Close() error {
	return cs.stream.Close()
}
