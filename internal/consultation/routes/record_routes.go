package routes

import (
	"github.com/c14220110/clinic-backend/internal/consultation/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterRecordRoutes mounts the record and consultation endpoints on g.
func RegisterRecordRoutes(g *echo.Group, rc *controllers.RecordController) {
	r := g.Group("/records")
	r.POST("", rc.CreateRecord)
	r.GET("", rc.ListRecords)
	r.GET("/document/:id", rc.RenderDocument)
	r.GET("/:patientId", rc.ListByPatient)

	g.POST("/consultations", rc.CompleteConsultation)
}
