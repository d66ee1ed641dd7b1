package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func respondError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// bindJSON binds the body into dst and answers 400 with field details when
// the body is malformed or fails validation.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, errInvalidRequest.WithDetails(request.FieldErrors(err)))
		return false
	}
	return true
}

// listFilter reads the query parameters shared by the list endpoints.
func listFilter(c *gin.Context) (usecase.ListFilter, bool) {
	f := usecase.ListFilter{
		Query:        strings.TrimSpace(c.Query("q")),
		Status:       strings.TrimSpace(c.Query("status")),
		CustomerID:   strings.TrimSpace(c.Query("customer_id")),
		TechnicianID: strings.TrimSpace(c.Query("technician_id")),
		Day:          entities.Weekday(strings.TrimSpace(c.Query("day"))),
		Severity:     strings.TrimSpace(c.Query("severity")),
		Type:         strings.TrimSpace(c.Query("type")),
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := entities.ParseDate(raw)
		if err != nil {
			respondError(c, errInvalidRequest.WithDetails([]request.FieldError{{Field: "date", Rule: "date"}}))
			return usecase.ListFilter{}, false
		}
		f.Date = d
	}
	return f, true
}

// mapCommonError covers the failures every resource shares. ok is false
// when err needs a resource-specific mapping.
func mapCommonError(err error) (*pkg.AppError, bool) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return pkg.NewDomainError("INVALID_REQUEST", validationMessage(err), err, http.StatusBadRequest), true
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Status change not allowed", err, http.StatusConflict), true
	case errors.Is(err, entities.ErrNotEditable):
		return pkg.NewDomainError("NOT_EDITABLE", "Record can no longer be edited", err, http.StatusConflict), true
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONFLICT", "Record was changed by another request, reload and try again", err, http.StatusConflict), true
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound), true
	case errors.Is(err, usecase.ErrTechnicianNotFound):
		return pkg.NewDomainErrorSimple("TECHNICIAN_NOT_FOUND", "Technician not found", http.StatusNotFound), true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

// validationMessage keeps the use case's reason without the sentinel prefix.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, usecase.ErrInvalidInput.Error()+": "); i >= 0 {
		return msg[i+len(usecase.ErrInvalidInput.Error())+2:]
	}
	return "Invalid request"
}
