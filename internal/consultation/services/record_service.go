package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c14220110/clinic-backend/internal/consultation/models"
)

type RecordService struct {
	Store RecordStore
	now   func() time.Time
}

func NewRecordService(store RecordStore) *RecordService {
	return &RecordService{Store: store, now: time.Now}
}

// AddRecord stores the snapshots as given. The patient must exist.
func (s *RecordService) AddRecord(ctx context.Context, req models.RecordRequest) (*models.Record, error) {
	if req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: patient_id is required", ErrInvalidRecord)
	}

	now := s.now().UTC()
	rec := &models.Record{
		PatientID:    req.PatientID,
		Date:         now,
		Registration: req.Registration,
		Consultation: req.Consultation,
		PDFFileName:  strings.TrimSpace(req.PDFFileName),
	}
	if req.Date != nil {
		rec.Date = req.Date.UTC()
	}

	err := s.Store.WithTx(ctx, func(tx RecordTx) error {
		p, err := tx.GetPatient(ctx, req.PatientID)
		if err != nil {
			return err
		}
		if rec.PDFFileName == "" {
			name := rec.Registration.Name
			if strings.TrimSpace(name) == "" {
				name = p.Name
			}
			rec.PDFFileName = PDFFileName(name, now)
		}
		return tx.CreateRecord(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecordService) ListAll(ctx context.Context) ([]models.Record, error) {
	return s.Store.ListRecords(ctx)
}

func (s *RecordService) ListByPatient(ctx context.Context, patientID int64) ([]models.Record, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("%w: invalid patient id", ErrInvalidRecord)
	}
	return s.Store.ListByPatient(ctx, patientID)
}

func (s *RecordService) Get(ctx context.Context, id int64) (*models.Record, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
	}
	return s.Store.GetRecord(ctx, id)
}

// PDFFileName builds "<Name_With_Underscores>_<unix millis>.pdf".
func PDFFileName(name string, at time.Time) string {
	stem := strings.Join(strings.Fields(name), "_")
	if stem == "" {
		stem = "record"
	}
	return stem + "_" + strconv.FormatInt(at.UnixMilli(), 10) + ".pdf"
}
