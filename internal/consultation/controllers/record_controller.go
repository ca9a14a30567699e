package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/c14220110/clinic-backend/internal/common/response"
	"github.com/c14220110/clinic-backend/internal/consultation/document"
	"github.com/c14220110/clinic-backend/internal/consultation/models"
	"github.com/c14220110/clinic-backend/internal/consultation/services"
	patientmodels "github.com/c14220110/clinic-backend/internal/patient/models"
	patientservices "github.com/c14220110/clinic-backend/internal/patient/services"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/c14220110/clinic-backend/pkg/metrics"
	"github.com/c14220110/clinic-backend/ws"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RecordController handles consultation records and visit completion.
type RecordController struct {
	Records       *services.RecordService
	Consultations *services.ConsultationService
	Renderer      document.Renderer
	Hub           *ws.Hub
	Metrics       *metrics.Recorder
}

func NewRecordController(records *services.RecordService, consultations *services.ConsultationService,
	renderer document.Renderer, hub *ws.Hub, rec *metrics.Recorder) *RecordController {
	return &RecordController{
		Records:       records,
		Consultations: consultations,
		Renderer:      renderer,
		Hub:           hub,
		Metrics:       rec,
	}
}

// CompleteResult is the data of POST /consultations.
type CompleteResult struct {
	Record  *models.Record         `json:"record"`
	Patient *patientmodels.Patient `json:"patient"`
}

// CreateRecord handles POST /records.
func (rc *RecordController) CreateRecord(c echo.Context) error {
	var req models.RecordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}

	rec, err := rc.Records.AddRecord(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	logger.FromEcho(c).Info("record created", zap.Int64("record_id", rec.ID), zap.Int64("patient_id", rec.PatientID))
	rc.Metrics.RecordCreated()
	rc.Hub.Publish("record.created", rec)
	return response.Success(c, http.StatusCreated, "Record created successfully", rec)
}

func (rc *RecordController) ListRecords(c echo.Context) error {
	recs, err := rc.Records.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Records retrieved successfully", recs)
}

// ListByPatient handles GET /records/:patientId, newest first.
func (rc *RecordController) ListByPatient(c echo.Context) error {
	id, ok := parseID(c, "patientId")
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid patient id")
	}
	recs, err := rc.Records.ListByPatient(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Records retrieved successfully", recs)
}

// RenderDocument handles GET /records/document/:id.
func (rc *RecordController) RenderDocument(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid record id")
	}
	rec, err := rc.Records.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	body, err := rc.Renderer.Render(rec)
	if err != nil {
		return writeError(c, err)
	}

	name := document.FileName(rec, rc.Renderer.Extension())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Blob(http.StatusOK, rc.Renderer.ContentType(), body)
}

// CompleteConsultation handles POST /consultations.
func (rc *RecordController) CompleteConsultation(c echo.Context) error {
	var req models.ConsultationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}

	rec, p, err := rc.Consultations.Complete(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	logger.FromEcho(c).Info("consultation completed", zap.Int64("patient_id", p.ID), zap.Int64("record_id", rec.ID))
	rc.Metrics.RecordCreated()
	rc.Metrics.PatientConsulted()
	rc.Hub.Publish("record.created", rec)
	rc.Hub.Publish("patient.consulted", p)
	return response.Success(c, http.StatusCreated, "Consultation completed successfully", CompleteResult{Record: rec, Patient: p})
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidRecord), errors.Is(err, patientservices.ErrInvalidPatient):
		return response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRecordNotFound), errors.Is(err, patientservices.ErrPatientNotFound):
		return response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrPatientNotQueued):
		return response.Error(c, http.StatusConflict, err.Error())
	}
	logger.FromEcho(c).Error("record request failed", zap.Error(err))
	return response.Error(c, http.StatusInternalServerError, err.Error())
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}
