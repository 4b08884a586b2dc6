package chat

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/services/chat"
	"github.com/varaher/prana/internal/services/chat/models"
	"github.com/varaher/prana/pkg/httpext"
)

// HandleAnalyzeImage runs a single non-streaming completion over an image.
func HandleAnalyzeImage(chatService *chat.Implementation, w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// use a single instance of Validate, it caches struct info
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	analysis, err := chatService.AnalyzeImage(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to analyze image")
		httpext.JsonError(w, "Failed to analyze image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.AnalyzeResponse{Analysis: analysis}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		httpext.JsonError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
