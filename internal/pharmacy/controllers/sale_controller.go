package controllers

import (
	"net/http"
	"strconv"

	"github.com/c14220110/clinic-backend/internal/common/response"
	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
	"github.com/c14220110/clinic-backend/internal/pharmacy/services"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/c14220110/clinic-backend/pkg/metrics"
	"github.com/c14220110/clinic-backend/ws"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SaleController handles stock deduction, through both /sales and the bulk
// stock endpoint.
type SaleController struct {
	Service *services.SaleService
	Hub     *ws.Hub
	Metrics *metrics.Recorder
}

func NewSaleController(service *services.SaleService, hub *ws.Hub, rec *metrics.Recorder) *SaleController {
	return &SaleController{Service: service, Hub: hub, Metrics: rec}
}

// RecordSale handles POST /sales with {"entries": [{id, name, sold}]}.
func (sc *SaleController) RecordSale(c echo.Context) error {
	var req models.SaleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}
	return sc.record(c, req.Entries, http.StatusCreated, "Sale recorded successfully")
}

// BulkDeduct handles PATCH /stock/bulk/update with a bare [{id, sold}] array.
func (sc *SaleController) BulkDeduct(c echo.Context) error {
	var entries []models.SaleEntry
	if err := c.Bind(&entries); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}
	return sc.record(c, entries, http.StatusOK, "Stock updated successfully")
}

func (sc *SaleController) record(c echo.Context, entries []models.SaleEntry, status int, message string) error {
	log := logger.FromEcho(c)

	batch, err := sc.Service.Record(c.Request().Context(), entries)
	if err != nil {
		if ise, ok := services.IsInsufficientStock(err); ok {
			sc.Metrics.InsufficientStock()
			log.Warn("sale rejected",
				zap.Int64("stock_id", ise.ItemID), zap.Int("requested", ise.Requested), zap.Int("available", ise.Available))
		}
		return writeError(c, err)
	}

	log.Info("sale recorded",
		zap.String("batch_id", batch.BatchID), zap.Int("lines", len(batch.Sales)), zap.Int("units", batch.Units()))
	sc.Metrics.SaleRecorded(len(batch.Sales), batch.Units())
	sc.Hub.Publish("sale.recorded", batch)
	return response.Success(c, status, message, batch)
}

// ListSales handles GET /sales, optionally narrowed with ?medicine_id=.
func (sc *SaleController) ListSales(c echo.Context) error {
	var medicineID int64
	if raw := c.QueryParam("medicine_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return response.Error(c, http.StatusBadRequest, "invalid medicine_id")
		}
		medicineID = id
	}

	sales, err := sc.Service.List(c.Request().Context(), medicineID)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Sales retrieved successfully", sales)
}
