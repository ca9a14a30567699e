package services

import (
	"context"
	"fmt"
	"time"

	"github.com/c14220110/clinic-backend/internal/consultation/models"
	patientmodels "github.com/c14220110/clinic-backend/internal/patient/models"
	patientservices "github.com/c14220110/clinic-backend/internal/patient/services"
)

// ConsultationService finishes a visit for the patient being seen.
type ConsultationService struct {
	Store RecordStore
	now   func() time.Time
}

func NewConsultationService(store RecordStore) *ConsultationService {
	return &ConsultationService{Store: store, now: time.Now}
}

// Complete amends the patient's vitals, snapshots the visit into a new
// record and takes the patient off the queue, in one transaction. Vitals left
// empty in the consultation keep the patient's current values. A patient that
// is not queued yields ErrPatientNotQueued and nothing is written.
func (s *ConsultationService) Complete(ctx context.Context, req models.ConsultationRequest) (*models.Record, *patientmodels.Patient, error) {
	if req.PatientID <= 0 {
		return nil, nil, fmt.Errorf("%w: patient_id is required", ErrInvalidRecord)
	}
	amended := patientservices.NormalizeVitals(req.Consultation.Vitals())
	if err := patientservices.ValidateVitals(amended); err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	var (
		rec     *models.Record
		patient *patientmodels.Patient
	)
	err := s.Store.WithTx(ctx, func(tx RecordTx) error {
		p, err := tx.GetPatient(ctx, req.PatientID)
		if err != nil {
			return err
		}
		if p.Status != patientmodels.StatusQueued {
			return fmt.Errorf("%w: patient %d is %s", ErrPatientNotQueued, p.ID, p.Status)
		}

		vitals := p.Vitals.Overlay(amended)
		if err := tx.UpdateVitals(ctx, p.ID, vitals); err != nil {
			return err
		}

		consultation := req.Consultation
		consultation.BP = vitals.BP
		consultation.SpO2 = vitals.SpO2
		consultation.Temperature = vitals.Temperature
		consultation.HR = vitals.HR

		r := &models.Record{
			PatientID: p.ID,
			Date:      now,
			Registration: models.Registration{
				Name:    p.Name,
				Age:     p.Age,
				Gender:  p.Gender,
				Contact: p.Contact,
				Address: p.Address,
			},
			Consultation: consultation,
			PDFFileName:  PDFFileName(p.Name, now),
		}
		if err := tx.CreateRecord(ctx, r); err != nil {
			return err
		}

		changed, err := tx.MarkConsulted(ctx, p.ID)
		if err != nil {
			return err
		}
		if !changed {
			// another request completed this patient after our read
			return fmt.Errorf("%w: patient %d", ErrPatientNotQueued, p.ID)
		}

		p.Vitals = vitals
		p.Status = patientmodels.StatusConsulted
		rec, patient = r, p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return rec, patient, nil
}
