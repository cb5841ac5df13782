package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medidesk/frontdesk-api/internal/model"
	"github.com/medidesk/frontdesk-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, first_name, middle_name, last_name, title, gender,
			date_of_birth, phone_number, picture, is_new, hospital_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FirstName,
		patient.MiddleName,
		patient.LastName,
		patient.Title,
		patient.Gender,
		patient.DateOfBirth,
		patient.PhoneNumber,
		patient.Picture,
		patient.IsNew,
		patient.HospitalID,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("failed to create patient: %w", repository.ErrDuplicateHospitalID)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY created_at DESC`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, q string) ([]*model.Patient, error) {
	query := `
		SELECT * FROM patients
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR hospital_id ILIKE $1
		ORDER BY last_name, first_name
	`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, "%"+q+"%"); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, middle_name = $2, last_name = $3, title = $4,
			gender = $5, date_of_birth = $6, phone_number = $7, picture = $8,
			is_new = $9, updated_at = $10
		WHERE id = $11
	`
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.MiddleName,
		patient.LastName,
		patient.Title,
		patient.Gender,
		patient.DateOfBirth,
		patient.PhoneNumber,
		patient.Picture,
		patient.IsNew,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM patients`); err != nil {
		return fmt.Errorf("failed to delete patients: %w", err)
	}
	return nil
}
