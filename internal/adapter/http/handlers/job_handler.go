package handlers

import (
	"errors"
	"net/http"

	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	usecase usecase.IJobUseCase
}

func NewJobHandler(uc usecase.IJobUseCase) *JobHandler {
	return &JobHandler{usecase: uc}
}

// ListJobs accepts status, date, customer_id and technician_id filters on
// top of the search term.
func (h *JobHandler) ListJobs(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	res, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var payload request.JobRequest
	if !bindJSON(c, &payload) {
		return
	}
	job, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob edits a job that has not started yet.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var payload request.JobRequest
	if !bindJSON(c, &payload) {
		return
	}
	job, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) StartJob(c *gin.Context) {
	job, err := h.usecase.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, job)
}

// CompleteJob finishes the job and returns it with the invoice drafted for it.
func (h *JobHandler) CompleteJob(c *gin.Context) {
	var payload request.CompleteJobRequest
	if !bindJSON(c, &payload) {
		return
	}
	res, err := h.usecase.Complete(c.Request.Context(), c.Param("id"), *payload.ActualTime)
	if err != nil {
		respondError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func mapJobError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
