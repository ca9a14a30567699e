package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/c14220110/clinic-backend/internal/common/response"
	"github.com/c14220110/clinic-backend/internal/patient/models"
	"github.com/c14220110/clinic-backend/internal/patient/services"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/c14220110/clinic-backend/pkg/metrics"
	"github.com/c14220110/clinic-backend/ws"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PatientController handles registration and the consultation queue.
type PatientController struct {
	Patients *services.PatientService
	Queue    *services.QueueService
	Hub      *ws.Hub
	Metrics  *metrics.Recorder
}

func NewPatientController(patients *services.PatientService, queue *services.QueueService, hub *ws.Hub, rec *metrics.Recorder) *PatientController {
	return &PatientController{Patients: patients, Queue: queue, Hub: hub, Metrics: rec}
}

// ConsultedResult is the data of PATCH /patients/queue/:id/consulted.
type ConsultedResult struct {
	Patient *models.Patient `json:"patient"`
	Changed bool            `json:"changed"`
}

func (pc *PatientController) ListPatients(c echo.Context) error {
	patients, err := pc.Patients.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Patients retrieved successfully", patients)
}

// RegisterPatient handles POST /patients.
func (pc *PatientController) RegisterPatient(c echo.Context) error {
	var req models.PatientRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}

	p, err := pc.Patients.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	logger.FromEcho(c).Info("patient registered", zap.Int64("patient_id", p.ID))
	pc.Metrics.PatientRegistered()
	pc.Hub.Publish("patient.registered", p)
	return response.Success(c, http.StatusCreated, "Patient registered successfully", p)
}

func (pc *PatientController) GetPatient(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid patient id")
	}
	p, err := pc.Patients.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Patient retrieved successfully", p)
}

// UpdateVitals handles PATCH /patients/:id/vitals.
func (pc *PatientController) UpdateVitals(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid patient id")
	}
	var req models.VitalsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}

	p, err := pc.Patients.UpdateVitals(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	pc.Hub.Publish("patient.vitals_updated", p)
	return response.Success(c, http.StatusOK, "Vitals updated successfully", p)
}

// ListQueue handles GET /patients/queue, oldest registration first.
func (pc *PatientController) ListQueue(c echo.Context) error {
	queued, err := pc.Queue.ListQueued(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Queue retrieved successfully", queued)
}

func (pc *PatientController) CurrentPatient(c echo.Context) error {
	p, err := pc.Queue.Current(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Current patient retrieved successfully", p)
}

// MarkConsulted handles PATCH /patients/queue/:id/consulted.
func (pc *PatientController) MarkConsulted(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid patient id")
	}

	p, changed, err := pc.Queue.MarkConsulted(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	if !changed {
		return response.Success(c, http.StatusOK, "Patient already consulted", ConsultedResult{Patient: p})
	}
	logger.FromEcho(c).Info("patient consulted", zap.Int64("patient_id", id))
	pc.Metrics.PatientConsulted()
	pc.Hub.Publish("patient.consulted", p)
	return response.Success(c, http.StatusOK, "Patient marked as consulted", ConsultedResult{Patient: p, Changed: true})
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidPatient):
		return response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPatientNotFound), errors.Is(err, services.ErrQueueEmpty):
		return response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrPatientNotQueued):
		return response.Error(c, http.StatusConflict, err.Error())
	}
	logger.FromEcho(c).Error("patient request failed", zap.Error(err))
	return response.Error(c, http.StatusInternalServerError, err.Error())
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
