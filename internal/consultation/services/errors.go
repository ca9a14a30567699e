package services

import (
	"errors"

	patientservices "github.com/c14220110/clinic-backend/internal/patient/services"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrPatientNotQueued = patientservices.ErrPatientNotQueued
)
