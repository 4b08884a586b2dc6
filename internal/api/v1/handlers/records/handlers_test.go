package records

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	recordsvc "github.com/varaher/prana/internal/services/records"
)

// fakeRepo keeps everything in maps; just enough storage to drive handlers.
type fakeRepo struct {
	medications map[uuid.UUID]*recordsvc.Medication
	records     map[uuid.UUID]*recordsvc.HealthRecord
	readings    map[uuid.UUID]*recordsvc.VitalsReading
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		medications: make(map[uuid.UUID]*recordsvc.Medication),
		records:     make(map[uuid.UUID]*recordsvc.HealthRecord),
		readings:    make(map[uuid.UUID]*recordsvc.VitalsReading),
	}
}

func (f *fakeRepo) SaveMedication(_ context.Context, m *recordsvc.Medication) error {
	copied := *m
	f.medications[m.ID] = &copied
	return nil
}

func (f *fakeRepo) GetMedication(_ context.Context, id uuid.UUID) (*recordsvc.Medication, error) {
	m, ok := f.medications[id]
	if !ok {
		return nil, recordsvc.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeRepo) ListMedications(_ context.Context, userID uuid.UUID) ([]recordsvc.Medication, error) {
	out := []recordsvc.Medication{}
	for _, m := range f.medications {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteMedication(_ context.Context, id uuid.UUID) error {
	if _, ok := f.medications[id]; !ok {
		return recordsvc.ErrNotFound
	}
	delete(f.medications, id)
	return nil
}

func (f *fakeRepo) SaveRecord(_ context.Context, r *recordsvc.HealthRecord) error {
	copied := *r
	f.records[r.ID] = &copied
	return nil
}

func (f *fakeRepo) GetRecord(_ context.Context, id uuid.UUID) (*recordsvc.HealthRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, recordsvc.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) ListRecords(_ context.Context, userID uuid.UUID) ([]recordsvc.HealthRecord, error) {
	out := []recordsvc.HealthRecord{}
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteRecord(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return recordsvc.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRepo) SaveReading(_ context.Context, r *recordsvc.VitalsReading) error {
	copied := *r
	f.readings[r.ID] = &copied
	return nil
}

func (f *fakeRepo) GetReading(_ context.Context, id uuid.UUID) (*recordsvc.VitalsReading, error) {
	r, ok := f.readings[id]
	if !ok {
		return nil, recordsvc.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) ListReadings(_ context.Context, userID uuid.UUID) ([]recordsvc.VitalsReading, error) {
	out := []recordsvc.VitalsReading{}
	for _, r := range f.readings {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteReading(_ context.Context, id uuid.UUID) error {
	if _, ok := f.readings[id]; !ok {
		return recordsvc.ErrNotFound
	}
	delete(f.readings, id)
	return nil
}

func newService(t *testing.T) *recordsvc.Service {
	t.Helper()
	svc, err := recordsvc.NewService(newFakeRepo())
	require.NoError(t, err)
	return svc
}

func TestHandleAddMedication(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid medication",
			body:           `{"user_id": "` + userID.String() + `", "name": "Metformin", "dosage": "500mg", "schedule": "twice daily"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"user_id": "` + userID.String() + `"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid user id",
			body:           `{"user_id": "not-a-uuid", "name": "Metformin"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/medications", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			HandleAddMedication(svc, w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var m recordsvc.Medication
				require.NoError(t, json.NewDecoder(w.Body).Decode(&m))
				assert.Equal(t, "Metformin", m.Name)
				assert.NotEqual(t, uuid.Nil, m.ID)
			}
		})
	}
}

func TestHandleGetMedication(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	body := `{"user_id": "` + userID.String() + `", "name": "Lisinopril", "dosage": "10mg", "schedule": "daily"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/medications", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	HandleAddMedication(svc, w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created recordsvc.Medication
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	req = httptest.NewRequest(http.MethodGet, "/v1/medications/"+created.ID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": created.ID.String()})
	w = httptest.NewRecorder()
	HandleGetMedication(svc, w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var fetched recordsvc.Medication
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Lisinopril", fetched.Name)

	req = httptest.NewRequest(http.MethodGet, "/v1/medications/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	w = httptest.NewRecorder()
	HandleGetMedication(svc, w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteMedicationNotFound(t *testing.T) {
	svc := newService(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/medications/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	w := httptest.NewRecorder()

	HandleDeleteMedication(svc, w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleRecordRoundTrip(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	body := `{"user_id": "` + userID.String() + `", "kind": "allergy", "title": "Penicillin", "detail": "rash"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/records", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	HandleAddRecord(svc, w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created recordsvc.HealthRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	req = httptest.NewRequest(http.MethodGet, "/v1/records/"+created.ID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": created.ID.String()})
	w = httptest.NewRecorder()
	HandleGetRecord(svc, w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var fetched recordsvc.HealthRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, recordsvc.KindAllergy, fetched.Kind)
}

func TestHandleAddRecordRejectsUnknownKind(t *testing.T) {
	svc := newService(t)

	body := `{"user_id": "` + uuid.NewString() + `", "kind": "horoscope", "title": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/records", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	HandleAddRecord(svc, w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListReadings(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	body := `{"user_id": "` + userID.String() + `", "kind": "heart_rate", "value": 72, "unit": "bpm"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/readings", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	HandleAddReading(svc, w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/readings/user/"+userID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID.String()})
	w = httptest.NewRecorder()
	HandleListReadings(svc, w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var readings []recordsvc.VitalsReading
	require.NoError(t, json.NewDecoder(w.Body).Decode(&readings))
	require.Len(t, readings, 1)
	assert.Equal(t, 72.0, readings[0].Value)

	req = httptest.NewRequest(http.MethodGet, "/v1/readings/"+readings[0].ID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": readings[0].ID.String()})
	w = httptest.NewRecorder()
	HandleGetReading(svc, w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var fetched recordsvc.VitalsReading
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	assert.Equal(t, readings[0].ID, fetched.ID)
}

func TestHandleGetReadingNotFound(t *testing.T) {
	svc := newService(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/readings/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	w := httptest.NewRecorder()
	HandleGetReading(svc, w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
