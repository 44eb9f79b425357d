package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/ingest/trigger", handler.TriggerIngest)
		v1.GET("/files/:file_id", handler.GetFileStatus)
		v1.GET("/reports/defaulters", handler.GetDefaulters)
		v1.GET("/reports/summary", handler.GetMonthlySummary)
		v1.DELETE("/attendance", handler.ClearAttendance)
	}
}
