package routes

import (
	"poolpro/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAlerts  = "/alerts"
	PathReports = "/reports"
)

func addInsightRoutes(rg *gin.RouterGroup, alertHandler *handlers.AlertHandler, reportHandler *handlers.ReportHandler) {
	alerts := rg.Group(PathAlerts)
	{
		alerts.GET("", alertHandler.ListAlerts)
		alerts.GET("/stats", alertHandler.AlertStats)
		alerts.POST("/generate", alertHandler.GenerateAlerts)
		alerts.GET("/:id", alertHandler.GetAlert)
		alerts.POST("/:id/resolve", alertHandler.ResolveAlert)
	}

	reports := rg.Group(PathReports)
	{
		reports.GET("/revenue", reportHandler.Revenue)
		reports.GET("/jobs-performance", reportHandler.JobPerformance)
		reports.GET("/customer-stats", reportHandler.CustomerStats)
		reports.GET("/technician-performance", reportHandler.TechnicianPerformance)
		reports.GET("/financial-summary", reportHandler.FinancialSummary)
		reports.GET("/dashboard", reportHandler.Dashboard)
	}
}
