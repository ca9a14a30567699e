package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c14220110/clinic-backend/internal/common/response"
	consultationControllers "github.com/c14220110/clinic-backend/internal/consultation/controllers"
	"github.com/c14220110/clinic-backend/internal/consultation/document"
	consultationRepository "github.com/c14220110/clinic-backend/internal/consultation/repository"
	consultationRoutes "github.com/c14220110/clinic-backend/internal/consultation/routes"
	consultationServices "github.com/c14220110/clinic-backend/internal/consultation/services"
	patientControllers "github.com/c14220110/clinic-backend/internal/patient/controllers"
	patientRepository "github.com/c14220110/clinic-backend/internal/patient/repository"
	patientRoutes "github.com/c14220110/clinic-backend/internal/patient/routes"
	patientServices "github.com/c14220110/clinic-backend/internal/patient/services"
	pharmacyControllers "github.com/c14220110/clinic-backend/internal/pharmacy/controllers"
	pharmacyRepository "github.com/c14220110/clinic-backend/internal/pharmacy/repository"
	pharmacyRoutes "github.com/c14220110/clinic-backend/internal/pharmacy/routes"
	pharmacyServices "github.com/c14220110/clinic-backend/internal/pharmacy/services"
	"github.com/c14220110/clinic-backend/pkg/metrics"
	"github.com/c14220110/clinic-backend/ws"
)

// Deps are the shared objects the routes are built on.
type Deps struct {
	DB       *sqlx.DB
	Hub      *ws.Hub
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Recorder
}

// Init wires repositories, services and controllers and registers every route.
func Init(e *echo.Echo, d Deps) error {
	// repositories
	stockRepo := pharmacyRepository.NewStockRepository(d.DB)
	patientRepo := patientRepository.NewPatientRepository(d.DB)
	recordRepo := consultationRepository.NewRecordRepository(d.DB)

	// services
	stockService := pharmacyServices.NewStockService(stockRepo)
	saleService := pharmacyServices.NewSaleService(stockRepo)
	patientService := patientServices.NewPatientService(patientRepo)
	queueService := patientServices.NewQueueService(patientRepo)
	recordService := consultationServices.NewRecordService(recordRepo)
	consultationService := consultationServices.NewConsultationService(recordRepo)

	renderer, err := document.NewHTMLRenderer()
	if err != nil {
		return err
	}

	// controllers
	stockController := pharmacyControllers.NewStockController(stockService, d.Hub)
	saleController := pharmacyControllers.NewSaleController(saleService, d.Hub, d.Metrics)
	patientController := patientControllers.NewPatientController(patientService, queueService, d.Hub, d.Metrics)
	recordController := consultationControllers.NewRecordController(recordService, consultationService, renderer, d.Hub, d.Metrics)

	api := e.Group("")
	pharmacyRoutes.RegisterPharmacyRoutes(api, stockController, saleController)
	patientRoutes.RegisterPatientRoutes(api, patientController)
	consultationRoutes.RegisterRecordRoutes(api, recordController)

	e.GET("/health", health(d.DB))
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(d.Gatherer)))
	}
	if d.Hub != nil {
		e.GET("/ws", ws.ServeWS(d.Hub))
	}
	return nil
}

func health(db *sqlx.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return response.Error(c, http.StatusServiceUnavailable, "database unavailable: "+err.Error())
		}
		return response.Success(c, http.StatusOK, "OK", map[string]string{"database": "up"})
	}
}
