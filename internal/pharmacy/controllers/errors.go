package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/c14220110/clinic-backend/internal/common/response"
	"github.com/c14220110/clinic-backend/internal/pharmacy/services"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeError maps service errors onto status codes.
func writeError(c echo.Context, err error) error {
	if ise, ok := services.IsInsufficientStock(err); ok {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"status":    http.StatusConflict,
			"error":     ise.Error(),
			"item_id":   ise.ItemID,
			"name":      ise.Name,
			"requested": ise.Requested,
			"available": ise.Available,
		})
	}

	switch {
	case errors.Is(err, services.ErrInvalidStock), errors.Is(err, services.ErrInvalidSale):
		return response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStockNotFound):
		return response.Error(c, http.StatusNotFound, err.Error())
	}

	logger.FromEcho(c).Error("pharmacy request failed", zap.Error(err))
	return response.Error(c, http.StatusInternalServerError, err.Error())
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
