package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/varaher/prana/internal/services/chat/models"
	"github.com/varaher/prana/internal/services/emergency"
	"github.com/varaher/prana/pkg/sse"
)

const defaultImagePrompt = "Describe any health-relevant findings in this image in plain language."

// Implementation relays conversations to the upstream provider. One call to
// StreamChat is one relay activation: it owns its own accumulated-response
// buffer and emergency latch, both discarded when the stream ends.
type Implementation struct {
	provider Provider
	detector *emergency.Detector
}

func NewService(provider Provider, detector *emergency.Detector) (*Implementation, error) {
	if provider == nil {
		return nil, fmt.Errorf("completion provider is required")
	}
	if detector == nil {
		detector = emergency.NewDetector()
	}

	return &Implementation{
		provider: provider,
		detector: detector,
	}, nil
}

// StreamChat composes the outbound prompt, opens the upstream stream and
// re-emits every fragment on the sink in arrival order. The emergency event,
// when raised, follows the fragment that first completed a detection phrase
// and precedes any later fragment.
//
// A non-nil return means nothing was written to the sink, so the handler can
// still answer with a status-code error. Failures after the first event are
// delivered in-band as an error event, because the response headers are
// already committed.
func (s *Implementation) StreamChat(ctx context.Context, req *models.StreamRequest, sink EventSink) error {
	outbound, err := Compose(req.Messages, req.SystemPrompt, req.UserContext)
	if err != nil {
		return err
	}

	stream, err := s.provider.StreamCompletion(ctx, outbound)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open upstream completion stream")
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer stream.Close()

	var accumulated strings.Builder
	emergencyFired := false

	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			if werr := sink.WriteEvent(sse.Done()); werr != nil {
				log.Debug().Err(werr).Msg("Client closed connection before done event")
			}
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				// Client disconnect is a cancellation, not an error
				log.Debug().Msg("Client disconnected mid-stream, releasing upstream")
				return nil
			}
			if !sink.Started() {
				log.Error().Err(err).Msg("Upstream failed before any event was written")
				return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			}
			// Headers are committed; the only option left is an in-band error
			log.Error().Err(err).Msg("Upstream stream interrupted after streaming began")
			if werr := sink.WriteEvent(sse.Error("Stream interrupted")); werr != nil {
				log.Debug().Err(werr).Msg("Client closed connection before error event")
			}
			return nil
		}

		if err := sink.WriteEvent(sse.Content(fragment)); err != nil {
			log.Debug().Err(err).Msg("Client disconnected mid-stream, releasing upstream")
			return nil
		}

		accumulated.WriteString(fragment)
		if !emergencyFired && s.detector.Scan(accumulated.String()) {
			emergencyFired = true
			log.Info().Msg("Emergency phrase detected in assistant response")
			if err := sink.WriteEvent(sse.Emergency()); err != nil {
				log.Debug().Err(err).Msg("Client disconnected before emergency event")
				return nil
			}
		}
	}
}

// AnalyzeImage performs a single non-streaming completion over an image plus
// an optional instruction. Same relay shape as the chat path, one JSON reply.
func (s *Implementation) AnalyzeImage(ctx context.Context, req *models.AnalyzeRequest) (string, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = defaultImagePrompt
	}

	messages := []openai.ChatCompletionMessage{{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: req.Image}},
		},
	}}

	analysis, err := s.provider.Completion(ctx, messages)
	if err != nil {
		log.Error().Err(err).Msg("Failed to analyze image")
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return analysis, nil
}
