package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/c14220110/clinic-backend/internal/consultation/models"
	"github.com/c14220110/clinic-backend/internal/consultation/services"
	patientmodels "github.com/c14220110/clinic-backend/internal/patient/models"
	patientrepo "github.com/c14220110/clinic-backend/internal/patient/repository"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const recordColumns = `id, patient_id, date, registration, consultation, pdf_file_name, created_at`

// RecordRepository is the MariaDB implementation of services.RecordStore.
type RecordRepository struct {
	DB *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

var _ services.RecordStore = (*RecordRepository)(nil)

func (r *RecordRepository) ListRecords(ctx context.Context) ([]models.Record, error) {
	records := []models.Record{}
	err := r.DB.SelectContext(ctx, &records,
		`SELECT `+recordColumns+` FROM records ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]models.Record, error) {
	records := []models.Record{}
	err := r.DB.SelectContext(ctx, &records,
		`SELECT `+recordColumns+` FROM records WHERE patient_id = ? ORDER BY date DESC, id DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list records for patient %d: %w", patientID, err)
	}
	return records, nil
}

func (r *RecordRepository) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	return getRecord(ctx, r.DB, id)
}

func (r *RecordRepository) WithTx(ctx context.Context, fn func(tx services.RecordTx) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	if err := fn(&recordTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.FromContext(ctx).Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record tx: %w", err)
	}
	return nil
}

type recordTx struct {
	tx *sqlx.Tx
}

func (t *recordTx) GetPatient(ctx context.Context, id int64) (*patientmodels.Patient, error) {
	return patientrepo.GetPatient(ctx, t.tx, id)
}

func (t *recordTx) UpdateVitals(ctx context.Context, id int64, v patientmodels.Vitals) error {
	return patientrepo.UpdateVitals(ctx, t.tx, id, v)
}

func (t *recordTx) MarkConsulted(ctx context.Context, id int64) (bool, error) {
	return patientrepo.MarkConsulted(ctx, t.tx, id)
}

func (t *recordTx) CreateRecord(ctx context.Context, rec *models.Record) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO records (patient_id, date, registration, consultation, pdf_file_name) VALUES (?, ?, ?, ?, ?)`,
		rec.PatientID, rec.Date, rec.Registration, rec.Consultation, rec.PDFFileName)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	created, err := getRecord(ctx, t.tx, id)
	if err != nil {
		return err
	}
	*rec = *created
	return nil
}

func getRecord(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Record, error) {
	var rec models.Record
	err := sqlx.GetContext(ctx, q, &rec, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", services.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	return &rec, nil
}
