package records

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind classifies a health record entry.
type RecordKind string

const (
	KindCondition RecordKind = "condition"
	KindAllergy   RecordKind = "allergy"
	KindNote      RecordKind = "note"
)

// ReadingKind classifies a vitals reading.
type ReadingKind string

const (
	ReadingHeartRate     ReadingKind = "heart_rate"
	ReadingBloodPressure ReadingKind = "blood_pressure"
	ReadingGlucose       ReadingKind = "glucose"
	ReadingTemperature   ReadingKind = "temperature"
)

// Medication is one medication a user takes.
type Medication struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Schedule  string    `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HealthRecord is one entry in a user's health history.
type HealthRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Kind      RecordKind `json:"kind"`
	Title     string     `json:"title"`
	Detail    string     `json:"detail"`
	CreatedAt time.Time  `json:"created_at"`
}

// VitalsReading is one measured value, e.g. a heart-rate sample.
type VitalsReading struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	Kind       ReadingKind `json:"kind"`
	Value      float64     `json:"value"`
	Unit       string      `json:"unit"`
	RecordedAt time.Time   `json:"recorded_at"`
}
