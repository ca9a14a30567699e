package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/c14220110/clinic-backend/internal/patient/models"
	"github.com/c14220110/clinic-backend/internal/patient/services"
	"github.com/jmoiron/sqlx"
)

const patientColumns = `id, name, age, gender, contact, address, bp, spo2, temperature, hr, status, created_at, updated_at`

// PatientRepository is the MariaDB implementation of services.PatientStore.
type PatientRepository struct {
	DB *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{DB: db}
}

var _ services.PatientStore = (*PatientRepository)(nil)

func (r *PatientRepository) CreatePatient(ctx context.Context, p *models.Patient) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO patients (name, age, gender, contact, address, bp, spo2, temperature, hr, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Age, p.Gender, p.Contact, p.Address, p.BP, p.SpO2, p.Temperature, p.HR, p.Status)
	if err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	created, err := GetPatient(ctx, r.DB, id)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (r *PatientRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := r.DB.SelectContext(ctx, &patients,
		`SELECT `+patientColumns+` FROM patients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) GetPatient(ctx context.Context, id int64) (*models.Patient, error) {
	return GetPatient(ctx, r.DB, id)
}

func (r *PatientRepository) ListQueued(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := r.DB.SelectContext(ctx, &patients,
		`SELECT `+patientColumns+` FROM patients WHERE status = ? ORDER BY created_at, id`,
		models.StatusQueued)
	if err != nil {
		return nil, fmt.Errorf("list queued patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) UpdateVitals(ctx context.Context, id int64, v models.Vitals) error {
	return UpdateVitals(ctx, r.DB, id, v)
}

func (r *PatientRepository) MarkConsulted(ctx context.Context, id int64) (bool, error) {
	return MarkConsulted(ctx, r.DB, id)
}

// The functions below take either a *sqlx.DB or a *sqlx.Tx so that other
// repositories can run them inside their own transactions.

func GetPatient(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Patient, error) {
	var p models.Patient
	err := sqlx.GetContext(ctx, q, &p, `SELECT `+patientColumns+` FROM patients WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", services.ErrPatientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return &p, nil
}

func UpdateVitals(ctx context.Context, ext sqlx.ExtContext, id int64, v models.Vitals) error {
	_, err := ext.ExecContext(ctx,
		`UPDATE patients SET bp = ?, spo2 = ?, temperature = ?, hr = ?, updated_at = CURRENT_TIMESTAMP(3) WHERE id = ?`,
		v.BP, v.SpO2, v.Temperature, v.HR, id)
	if err != nil {
		return fmt.Errorf("update vitals for patient %d: %w", id, err)
	}
	_, err = GetPatient(ctx, ext, id)
	return err
}

// MarkConsulted reports false without error when the patient exists but was
// already consulted.
func MarkConsulted(ctx context.Context, ext sqlx.ExtContext, id int64) (bool, error) {
	res, err := ext.ExecContext(ctx,
		`UPDATE patients SET status = ?, updated_at = CURRENT_TIMESTAMP(3) WHERE id = ? AND status = ?`,
		models.StatusConsulted, id, models.StatusQueued)
	if err != nil {
		return false, fmt.Errorf("mark patient %d consulted: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark patient %d consulted: %w", id, err)
	}
	if n == 1 {
		return true, nil
	}
	if _, err := GetPatient(ctx, ext, id); err != nil {
		return false, err
	}
	return false, nil
}
