package routes

import (
	"github.com/c14220110/clinic-backend/internal/patient/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterPatientRoutes mounts registration and queue endpoints on g.
func RegisterPatientRoutes(g *echo.Group, pc *controllers.PatientController) {
	p := g.Group("/patients")
	p.GET("", pc.ListPatients)
	p.POST("", pc.RegisterPatient)
	p.GET("/queue", pc.ListQueue)
	p.GET("/queue/current", pc.CurrentPatient)
	p.PATCH("/queue/:id/consulted", pc.MarkConsulted)
	p.GET("/:id", pc.GetPatient)
	p.PATCH("/:id/vitals", pc.UpdateVitals)
}
