package handlers

import (
	"context"
	"net/http"

	"poolpro/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the read-only aggregate views.
type ReportHandler struct {
	usecase usecase.IReportUseCase
}

func NewReportHandler(uc usecase.IReportUseCase) *ReportHandler {
	return &ReportHandler{usecase: uc}
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	serveReport(c, h.usecase.Revenue)
}

func (h *ReportHandler) JobPerformance(c *gin.Context) {
	serveReport(c, h.usecase.JobPerformance)
}

func (h *ReportHandler) CustomerStats(c *gin.Context) {
	serveReport(c, h.usecase.CustomerStats)
}

func (h *ReportHandler) TechnicianPerformance(c *gin.Context) {
	serveReport(c, h.usecase.TechnicianPerformance)
}

func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	serveReport(c, h.usecase.FinancialSummary)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	serveReport(c, h.usecase.Dashboard)
}

func serveReport[T any](c *gin.Context, build func(ctx context.Context) (T, error)) {
	out, err := build(c.Request.Context())
	if err != nil {
		respondError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, out)
}
