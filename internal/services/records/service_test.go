package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory Repository for exercising the service layer.
type memoryRepo struct {
	medications map[uuid.UUID]*Medication
	records     map[uuid.UUID]*HealthRecord
	readings    map[uuid.UUID]*VitalsReading
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		medications: make(map[uuid.UUID]*Medication),
		records:     make(map[uuid.UUID]*HealthRecord),
		readings:    make(map[uuid.UUID]*VitalsReading),
	}
}

func (m *memoryRepo) SaveMedication(_ context.Context, med *Medication) error {
	copied := *med
	m.medications[med.ID] = &copied
	return nil
}

func (m *memoryRepo) GetMedication(_ context.Context, id uuid.UUID) (*Medication, error) {
	med, ok := m.medications[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *med
	return &copied, nil
}

func (m *memoryRepo) ListMedications(_ context.Context, userID uuid.UUID) ([]Medication, error) {
	out := []Medication{}
	for _, med := range m.medications {
		if med.UserID == userID {
			out = append(out, *med)
		}
	}
	return out, nil
}

func (m *memoryRepo) DeleteMedication(_ context.Context, id uuid.UUID) error {
	if _, ok := m.medications[id]; !ok {
		return ErrNotFound
	}
	delete(m.medications, id)
	return nil
}

func (m *memoryRepo) SaveRecord(_ context.Context, rec *HealthRecord) error {
	copied := *rec
	m.records[rec.ID] = &copied
	return nil
}

func (m *memoryRepo) GetRecord(_ context.Context, id uuid.UUID) (*HealthRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *memoryRepo) ListRecords(_ context.Context, userID uuid.UUID) ([]HealthRecord, error) {
	out := []HealthRecord{}
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memoryRepo) DeleteRecord(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memoryRepo) SaveReading(_ context.Context, reading *VitalsReading) error {
	copied := *reading
	m.readings[reading.ID] = &copied
	return nil
}

func (m *memoryRepo) GetReading(_ context.Context, id uuid.UUID) (*VitalsReading, error) {
	reading, ok := m.readings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *reading
	return &copied, nil
}

func (m *memoryRepo) ListReadings(_ context.Context, userID uuid.UUID) ([]VitalsReading, error) {
	out := []VitalsReading{}
	for _, reading := range m.readings {
		if reading.UserID == userID {
			out = append(out, *reading)
		}
	}
	return out, nil
}

func (m *memoryRepo) DeleteReading(_ context.Context, id uuid.UUID) error {
	if _, ok := m.readings[id]; !ok {
		return ErrNotFound
	}
	delete(m.readings, id)
	return nil
}

func TestMedicationLifecycle(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	med, err := svc.AddMedication(ctx, userID, "Metformin", "500mg", "twice daily")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, med.ID)
	assert.False(t, med.CreatedAt.IsZero())

	fetched, err := svc.GetMedication(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, med.ID, fetched.ID)

	updated, err := svc.UpdateMedication(ctx, med.ID, "", "850mg", "")
	require.NoError(t, err)
	assert.Equal(t, "Metformin", updated.Name)
	assert.Equal(t, "850mg", updated.Dosage)
	assert.Equal(t, "twice daily", updated.Schedule)

	list, err := svc.ListMedications(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteMedication(ctx, med.ID))
	assert.ErrorIs(t, svc.DeleteMedication(ctx, med.ID), ErrNotFound)
}

func TestAddMedicationRequiresName(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	require.NoError(t, err)

	_, err = svc.AddMedication(context.Background(), uuid.New(), "", "500mg", "")
	assert.Error(t, err)
}

func TestAddRecordValidatesKind(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	rec, err := svc.AddRecord(ctx, userID, KindAllergy, "Penicillin", "rash on exposure")
	require.NoError(t, err)
	assert.Equal(t, KindAllergy, rec.Kind)

	_, err = svc.AddRecord(ctx, userID, RecordKind("diagnosis"), "x", "")
	assert.Error(t, err)

	_, err = svc.AddRecord(ctx, userID, KindNote, "", "")
	assert.Error(t, err)
}

func TestAddReadingValidatesKindAndDefaultsTime(t *testing.T) {
	svc, err := NewService(newMemoryRepo())
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	reading, err := svc.AddReading(ctx, userID, ReadingHeartRate, 72, "bpm", time.Time{})
	require.NoError(t, err)
	assert.False(t, reading.RecordedAt.IsZero())

	_, err = svc.AddReading(ctx, userID, ReadingKind("steps"), 1000, "", time.Time{})
	assert.Error(t, err)

	list, err := svc.ListReadings(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	fetched, err := svc.GetReading(ctx, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, reading.ID, fetched.ID)

	_, err = svc.GetReading(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
