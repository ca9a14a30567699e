package services

import (
	"errors"
	"fmt"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidPatient  = errors.New("invalid patient")
	ErrQueueEmpty      = errors.New("no patient in queue")
	// ErrPatientNotQueued rejects changes to a patient who already left the queue.
	ErrPatientNotQueued = errors.New("patient is not in the queue")
)

func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrPatientNotFound, id)
}
