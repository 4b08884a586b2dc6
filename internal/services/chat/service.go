package chat

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/varaher/prana/pkg/sse"
)

var (
	// ErrNoMessages rejects a request whose conversation is missing or empty.
	// It is raised before any upstream call is made.
	ErrNoMessages = errors.New("messages array is required")

	// ErrUpstreamUnavailable marks a provider failure that happened before
	// any event reached the client, so the handler may still answer with a
	// plain status-code error.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)

// CompletionStream yields incremental fragments from the upstream provider.
// Recv returns io.EOF when the provider signals a clean end of stream.
type CompletionStream interface {
	Recv() (string, error)
	Close() error
}

// Provider is the injected capability for the hosted completion provider.
// Tests substitute a fake implementation without network access.
type Provider interface {
	// StreamCompletion opens a streaming completion over the composed turns.
	StreamCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (CompletionStream, error)

	// Completion performs a single non-streaming completion.
	Completion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// EventSink receives the ordered events of one relay activation.
type EventSink interface {
	WriteEvent(sse.Event) error
	Started() bool
}
