package services

import (
	"context"
	"fmt"

	"github.com/c14220110/clinic-backend/internal/patient/models"
)

type PatientService struct {
	Store PatientStore
}

func NewPatientService(store PatientStore) *PatientService {
	return &PatientService{Store: store}
}

// Register validates the registration form and adds the patient to the queue.
func (s *PatientService) Register(ctx context.Context, req models.PatientRequest) (*models.Patient, error) {
	p, err := normalizeRegistration(req)
	if err != nil {
		return nil, err
	}
	if err := s.Store.CreatePatient(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.Store.ListPatients(ctx)
}

func (s *PatientService) Get(ctx context.Context, id int64) (*models.Patient, error) {
	if id <= 0 {
		return nil, notFound(id)
	}
	return s.Store.GetPatient(ctx, id)
}

// UpdateVitals amends the vitals present in req and returns the patient.
// Only queued patients can be amended.
func (s *PatientService) UpdateVitals(ctx context.Context, id int64, req models.VitalsRequest) (*models.Patient, error) {
	if req.Empty() {
		return nil, fmt.Errorf("%w: at least one vital is required", ErrInvalidPatient)
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusQueued {
		return nil, fmt.Errorf("%w: patient %d is %s", ErrPatientNotQueued, p.ID, p.Status)
	}
	vitals := NormalizeVitals(req.Apply(p.Vitals))
	if err := ValidateVitals(vitals); err != nil {
		return nil, err
	}
	if err := s.Store.UpdateVitals(ctx, id, vitals); err != nil {
		return nil, err
	}
	p.Vitals = vitals
	return p, nil
}
