package records

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service owns validation and identity for the records store; persistence is
// behind the Repository boundary.
type Service struct {
	repo Repository
}

func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("records repository is required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) AddMedication(ctx context.Context, userID uuid.UUID, name, dosage, schedule string) (*Medication, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: medication name is required", ErrInvalid)
	}

	now := time.Now().UTC()
	m := &Medication{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Dosage:    dosage,
		Schedule:  schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.SaveMedication(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save medication: %w", err)
	}

	log.Info().Str("medication_id", m.ID.String()).Msg("Medication added")
	return m, nil
}

func (s *Service) UpdateMedication(ctx context.Context, id uuid.UUID, name, dosage, schedule string) (*Medication, error) {
	m, err := s.repo.GetMedication(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		m.Name = name
	}
	if dosage != "" {
		m.Dosage = dosage
	}
	if schedule != "" {
		m.Schedule = schedule
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveMedication(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return m, nil
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.repo.GetMedication(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, userID uuid.UUID) ([]Medication, error) {
	return s.repo.ListMedications(ctx, userID)
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMedication(ctx, id)
}

func (s *Service) AddRecord(ctx context.Context, userID uuid.UUID, kind RecordKind, title, detail string) (*HealthRecord, error) {
	switch kind {
	case KindCondition, KindAllergy, KindNote:
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", ErrInvalid, kind)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: record title is required", ErrInvalid)
	}

	rec := &HealthRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	log.Info().Str("record_id", rec.ID.String()).Str("kind", string(kind)).Msg("Health record added")
	return rec, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*HealthRecord, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, userID uuid.UUID) ([]HealthRecord, error) {
	return s.repo.ListRecords(ctx, userID)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRecord(ctx, id)
}

func (s *Service) AddReading(ctx context.Context, userID uuid.UUID, kind ReadingKind, value float64, unit string, recordedAt time.Time) (*VitalsReading, error) {
	switch kind {
	case ReadingHeartRate, ReadingBloodPressure, ReadingGlucose, ReadingTemperature:
	default:
		return nil, fmt.Errorf("%w: unknown reading kind %q", ErrInvalid, kind)
	}

	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	reading := &VitalsReading{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       kind,
		Value:      value,
		Unit:       unit,
		RecordedAt: recordedAt,
	}
	if err := s.repo.SaveReading(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}
	return reading, nil
}

func (s *Service) GetReading(ctx context.Context, id uuid.UUID) (*VitalsReading, error) {
	return s.repo.GetReading(ctx, id)
}

func (s *Service) ListReadings(ctx context.Context, userID uuid.UUID) ([]VitalsReading, error) {
	return s.repo.ListReadings(ctx, userID)
}

func (s *Service) DeleteReading(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteReading(ctx, id)
}
