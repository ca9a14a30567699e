package services

import (
	"context"

	"github.com/c14220110/clinic-backend/internal/patient/models"
)

// PatientStore persists patients. Lookups of unknown ids return an error
// wrapping ErrPatientNotFound.
type PatientStore interface {
	CreatePatient(ctx context.Context, p *models.Patient) error
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatient(ctx context.Context, id int64) (*models.Patient, error)
	// ListQueued returns queued patients by created_at, then id.
	ListQueued(ctx context.Context) ([]models.Patient, error)
	UpdateVitals(ctx context.Context, id int64, v models.Vitals) error
	// MarkConsulted flips queued to consulted in one statement and reports
	// whether the row changed.
	MarkConsulted(ctx context.Context, id int64) (bool, error)
}
