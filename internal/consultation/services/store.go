package services

import (
	"context"

	"github.com/c14220110/clinic-backend/internal/consultation/models"
	patientmodels "github.com/c14220110/clinic-backend/internal/patient/models"
)

// RecordStore persists consultation records.
type RecordStore interface {
	// ListRecords returns all records, newest first.
	ListRecords(ctx context.Context) ([]models.Record, error)
	// ListByPatient returns a patient's records by date DESC, id DESC.
	ListByPatient(ctx context.Context, patientID int64) ([]models.Record, error)
	GetRecord(ctx context.Context, id int64) (*models.Record, error)

	WithTx(ctx context.Context, fn func(tx RecordTx) error) error
}

// RecordTx touches the patient and the record of one visit together.
type RecordTx interface {
	GetPatient(ctx context.Context, id int64) (*patientmodels.Patient, error)
	UpdateVitals(ctx context.Context, id int64, v patientmodels.Vitals) error
	MarkConsulted(ctx context.Context, id int64) (bool, error)
	CreateRecord(ctx context.Context, r *models.Record) error
}
