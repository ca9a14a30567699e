package services

import (
	"context"

	"github.com/c14220110/clinic-backend/internal/patient/models"
)

// QueueService exposes the consultation queue. The patient at the head of
// the queue is the one currently being seen.
type QueueService struct {
	Store PatientStore
}

func NewQueueService(store PatientStore) *QueueService {
	return &QueueService{Store: store}
}

func (s *QueueService) ListQueued(ctx context.Context) ([]models.Patient, error) {
	return s.Store.ListQueued(ctx)
}

func (s *QueueService) Current(ctx context.Context) (*models.Patient, error) {
	queued, err := s.Store.ListQueued(ctx)
	if err != nil {
		return nil, err
	}
	if len(queued) == 0 {
		return nil, ErrQueueEmpty
	}
	return &queued[0], nil
}

// MarkConsulted removes the patient from the queue. Marking a patient that
// is already consulted succeeds with changed false.
func (s *QueueService) MarkConsulted(ctx context.Context, id int64) (p *models.Patient, changed bool, err error) {
	if id <= 0 {
		return nil, false, notFound(id)
	}
	changed, err = s.Store.MarkConsulted(ctx, id)
	if err != nil {
		return nil, false, err
	}
	p, err = s.Store.GetPatient(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, changed, nil
}
