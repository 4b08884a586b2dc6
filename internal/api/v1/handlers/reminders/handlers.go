package reminders

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/services/reminders"
	"github.com/varaher/prana/pkg/httpext"
)

type scheduleRequest struct {
	UserID     string    `json:"user_id" validate:"required,uuid"`
	Medication string    `json:"medication" validate:"required"`
	Note       string    `json:"note"`
	FireAt     time.Time `json:"fire_at" validate:"required"`
}

func HandleSchedule(svc *reminders.Service, w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
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

	reminder, err := svc.Schedule(r.Context(), uuid.MustParse(req.UserID), req.Medication, req.Note, req.FireAt)
	if err != nil {
		httpext.JsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(reminder); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func HandleList(svc *reminders.Service, w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		httpext.JsonError(w, "Invalid userId", http.StatusBadRequest)
		return
	}

	list, err := svc.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reminders")
		httpext.JsonError(w, "Failed to list reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func HandleCancel(svc *reminders.Service, w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		httpext.JsonError(w, "Invalid userId", http.StatusBadRequest)
		return
	}
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		httpext.JsonError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := svc.Cancel(r.Context(), userID, id); err != nil {
		if errors.Is(err, reminders.ErrNotFound) {
			httpext.JsonError(w, "Reminder not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Msg("Failed to cancel reminder")
		httpext.JsonError(w, "Failed to cancel reminder", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
