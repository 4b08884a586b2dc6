package records

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
	"github.com/varaher/prana/internal/services/records"
	"github.com/varaher/prana/pkg/httpext"
)

type medicationRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required"`
	Dosage   string `json:"dosage"`
	Schedule string `json:"schedule"`
}

type recordRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Kind   string `json:"kind" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Detail string `json:"detail"`
}

type readingRequest struct {
	UserID     string    `json:"user_id" validate:"required,uuid"`
	Kind       string    `json:"kind" validate:"required"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return false
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(dst); err != nil {
		log.Warn().Err(err).Msg("Request validation failed")
		httpext.JsonError(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		httpext.JsonError(w, fmt.Sprintf("Invalid %s", name), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func serviceError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, records.ErrNotFound) {
		httpext.JsonError(w, "Record not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, records.ErrInvalid) {
		httpext.JsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error().Err(err).Str("action", action).Msg("Records operation failed")
	httpext.JsonError(w, "Failed to "+action, http.StatusInternalServerError)
}

func HandleAddMedication(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	var req medicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	medication, err := svc.AddMedication(r.Context(), uuid.MustParse(req.UserID), req.Name, req.Dosage, req.Schedule)
	if err != nil {
		serviceError(w, err, "add medication")
		return
	}
	writeJSON(w, http.StatusCreated, medication)
}

func HandleUpdateMedication(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req medicationRequest
	// Partial updates are allowed, so only the body shape is validated
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	medication, err := svc.UpdateMedication(r.Context(), id, req.Name, req.Dosage, req.Schedule)
	if err != nil {
		serviceError(w, err, "update medication")
		return
	}
	writeJSON(w, http.StatusOK, medication)
}

func HandleGetMedication(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	medication, err := svc.GetMedication(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get medication")
		return
	}
	writeJSON(w, http.StatusOK, medication)
}

func HandleListMedications(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	medications, err := svc.ListMedications(r.Context(), userID)
	if err != nil {
		serviceError(w, err, "list medications")
		return
	}
	writeJSON(w, http.StatusOK, medications)
}

func HandleDeleteMedication(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := svc.DeleteMedication(r.Context(), id); err != nil {
		serviceError(w, err, "delete medication")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func HandleAddRecord(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := svc.AddRecord(r.Context(), uuid.MustParse(req.UserID), records.RecordKind(req.Kind), req.Title, req.Detail)
	if err != nil {
		serviceError(w, err, "add record")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func HandleGetRecord(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	record, err := svc.GetRecord(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get record")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func HandleListRecords(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	recs, err := svc.ListRecords(r.Context(), userID)
	if err != nil {
		serviceError(w, err, "list records")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func HandleDeleteRecord(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := svc.DeleteRecord(r.Context(), id); err != nil {
		serviceError(w, err, "delete record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func HandleAddReading(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	var req readingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reading, err := svc.AddReading(r.Context(), uuid.MustParse(req.UserID), records.ReadingKind(req.Kind), req.Value, req.Unit, req.RecordedAt)
	if err != nil {
		serviceError(w, err, "add reading")
		return
	}
	writeJSON(w, http.StatusCreated, reading)
}

func HandleGetReading(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reading, err := svc.GetReading(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get reading")
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func HandleListReadings(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	readings, err := svc.ListReadings(r.Context(), userID)
	if err != nil {
		serviceError(w, err, "list readings")
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func HandleDeleteReading(svc *records.Service, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := svc.DeleteReading(r.Context(), id); err != nil {
		serviceError(w, err, "delete reading")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
