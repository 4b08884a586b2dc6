package reports

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	chatmodels "github.com/varaher/prana/internal/services/chat/models"
	"github.com/varaher/prana/internal/services/report"
	"github.com/varaher/prana/pkg/httpext"
)

type generateRequest struct {
	UserID      string                  `json:"user_id" validate:"required,uuid"`
	UserContext *chatmodels.UserContext `json:"userContext,omitempty"`
}

type generateResponse struct {
	Report string `json:"report"`
}

// HandleGenerate produces a plain-language health summary for one user.
func HandleGenerate(svc *report.Service, w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(req); err != nil {
		log.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	generated, err := svc.Generate(r.Context(), uuid.MustParse(req.UserID), req.UserContext)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate report")
		httpext.JsonError(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(generateResponse{Report: generated}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
