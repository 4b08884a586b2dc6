package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/services/chat"
	"github.com/varaher/prana/internal/services/chat/models"
	"github.com/varaher/prana/pkg/httpext"
	"github.com/varaher/prana/pkg/sse"
)

// HandleChatStream relays one conversation to the completion provider and
// streams the reply back as server-sent events.
func HandleChatStream(chatService *chat.Implementation, w http.ResponseWriter, r *http.Request) {
	var req models.StreamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "messages" {
			log.Warn().Err(err).Msg("Client sent non-array messages field")
			httpext.JsonError(w, "Messages array is required", http.StatusBadRequest)
			return
		}
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if len(req.Messages) == 0 {
		log.Warn().Msg("Client sent request without messages")
		httpext.JsonError(w, "Messages array is required", http.StatusBadRequest)
		return
	}

	log.Info().
		Int("message_count", len(req.Messages)).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat stream request")

	sink, err := sse.NewWriter(w)
	if err != nil {
		log.Error().Err(err).Msg("Response writer cannot stream")
		httpext.JsonError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	if err := chatService.StreamChat(r.Context(), &req, sink); err != nil {
		// StreamChat only returns an error while the response is still
		// uncommitted, so a plain status-code reply is safe here.
		if errors.Is(err, chat.ErrNoMessages) {
			httpext.JsonError(w, "Messages array is required", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("Failed to process chat")
		httpext.JsonError(w, "Failed to process chat", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Msg("Chat stream completed")
}
