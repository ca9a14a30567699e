package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/c14220110/clinic-backend/internal/common/response"
	"github.com/c14220110/clinic-backend/internal/pharmacy/export"
	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
	"github.com/c14220110/clinic-backend/internal/pharmacy/services"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/c14220110/clinic-backend/ws"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StockController handles the medicine stock endpoints.
type StockController struct {
	Service *services.StockService
	Hub     *ws.Hub
}

func NewStockController(service *services.StockService, hub *ws.Hub) *StockController {
	return &StockController{Service: service, Hub: hub}
}

// ListStock handles GET /stock, with an optional ?q= name filter.
func (sc *StockController) ListStock(c echo.Context) error {
	items, err := sc.Service.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Stock retrieved successfully", items)
}

func (sc *StockController) GetStock(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid stock id")
	}
	item, err := sc.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Stock item retrieved successfully", item)
}

func (sc *StockController) CreateStock(c echo.Context) error {
	var req models.StockRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}

	item, err := sc.Service.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	logger.FromEcho(c).Info("stock item created",
		zap.Int64("stock_id", item.ID), zap.String("name", item.Name), zap.Int("quantity", item.Quantity))
	sc.Hub.Publish("stock.created", item)
	return response.Success(c, http.StatusCreated, "Stock item created successfully", item)
}

// UpdateStock handles PATCH /stock/:id. The quantity is overwritten, not adjusted.
func (sc *StockController) UpdateStock(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.Error(c, http.StatusBadRequest, "invalid stock id")
	}
	var req models.StockRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request payload")
	}

	item, err := sc.Service.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}

	logger.FromEcho(c).Info("stock item updated",
		zap.Int64("stock_id", item.ID), zap.Int("quantity", item.Quantity))
	sc.Hub.Publish("stock.updated", item)
	return response.Success(c, http.StatusOK, "Stock item updated successfully", item)
}

func (sc *StockController) ListOutOfStock(c echo.Context) error {
	items, err := sc.Service.ListOutOfStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, http.StatusOK, "Out of stock items retrieved successfully", items)
}

// ExportStock handles GET /stock/export and streams the stock list as xlsx.
func (sc *StockController) ExportStock(c echo.Context) error {
	items, err := sc.Service.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	data, err := export.StockWorkbook(items)
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("stock_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, export.ContentType, data)
}
