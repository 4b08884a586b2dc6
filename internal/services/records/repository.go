package records

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to nobody.
	ErrNotFound = errors.New("record not found")

	// ErrInvalid marks input the service refused before touching storage.
	ErrInvalid = errors.New("invalid input")
)

// Repository is the storage boundary for the records store.
type Repository interface {
	SaveMedication(ctx context.Context, m *Medication) error
	GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error)
	ListMedications(ctx context.Context, userID uuid.UUID) ([]Medication, error)
	DeleteMedication(ctx context.Context, id uuid.UUID) error

	SaveRecord(ctx context.Context, r *HealthRecord) error
	GetRecord(ctx context.Context, id uuid.UUID) (*HealthRecord, error)
	ListRecords(ctx context.Context, userID uuid.UUID) ([]HealthRecord, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error

	SaveReading(ctx context.Context, r *VitalsReading) error
	GetReading(ctx context.Context, id uuid.UUID) (*VitalsReading, error)
	ListReadings(ctx context.Context, userID uuid.UUID) ([]VitalsReading, error)
	DeleteReading(ctx context.Context, id uuid.UUID) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) SaveMedication(ctx context.Context, m *Medication) error {
	query := `
		INSERT INTO medications (id, user_id, name, dosage, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = $3,
			dosage = $4,
			schedule = $5,
			updated_at = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.Name, m.Dosage, m.Schedule, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *postgresRepo) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	query := `SELECT id, user_id, name, dosage, schedule, created_at, updated_at FROM medications WHERE id = $1`

	var m Medication
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Schedule, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepo) ListMedications(ctx context.Context, userID uuid.UUID) ([]Medication, error) {
	query := `SELECT id, user_id, name, dosage, schedule, created_at, updated_at
		FROM medications WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	medications := []Medication{}
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Schedule, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		medications = append(medications, m)
	}
	return medications, rows.Err()
}

func (r *postgresRepo) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, `DELETE FROM medications WHERE id = $1`, id)
}

func (r *postgresRepo) SaveRecord(ctx context.Context, rec *HealthRecord) error {
	query := `
		INSERT INTO health_records (id, user_id, kind, title, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Kind, rec.Title, rec.Detail, rec.CreatedAt)
	return err
}

func (r *postgresRepo) GetRecord(ctx context.Context, id uuid.UUID) (*HealthRecord, error) {
	query := `SELECT id, user_id, kind, title, detail, created_at FROM health_records WHERE id = $1`

	var rec HealthRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Kind, &rec.Title, &rec.Detail, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepo) ListRecords(ctx context.Context, userID uuid.UUID) ([]HealthRecord, error) {
	query := `SELECT id, user_id, kind, title, detail, created_at
		FROM health_records WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []HealthRecord{}
	for rows.Next() {
		var rec HealthRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Title, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *postgresRepo) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, `DELETE FROM health_records WHERE id = $1`, id)
}

func (r *postgresRepo) SaveReading(ctx context.Context, reading *VitalsReading) error {
	query := `
		INSERT INTO vitals_readings (id, user_id, kind, value, unit, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		reading.ID, reading.UserID, reading.Kind, reading.Value, reading.Unit, reading.RecordedAt)
	return err
}

func (r *postgresRepo) GetReading(ctx context.Context, id uuid.UUID) (*VitalsReading, error) {
	query := `SELECT id, user_id, kind, value, unit, recorded_at FROM vitals_readings WHERE id = $1`

	var reading VitalsReading
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reading.ID, &reading.UserID, &reading.Kind, &reading.Value, &reading.Unit, &reading.RecordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reading, nil
}

func (r *postgresRepo) ListReadings(ctx context.Context, userID uuid.UUID) ([]VitalsReading, error) {
	query := `SELECT id, user_id, kind, value, unit, recorded_at
		FROM vitals_readings WHERE user_id = $1 ORDER BY recorded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []VitalsReading{}
	for rows.Next() {
		var reading VitalsReading
		if err := rows.Scan(&reading.ID, &reading.UserID, &reading.Kind, &reading.Value, &reading.Unit, &reading.RecordedAt); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func (r *postgresRepo) DeleteReading(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, `DELETE FROM vitals_readings WHERE id = $1`, id)
}

func (r *postgresRepo) deleteByID(ctx context.Context, query string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
