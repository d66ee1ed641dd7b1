package request

import (
	"strings"

	"poolpro/internal/usecase"
)

type RouteRequest struct {
	Day          string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	TechnicianID string `json:"technicianId"`
}

type StopRequest struct {
	CustomerID    string `json:"customerId" binding:"required"`
	EstimatedTime int    `json:"estimatedTime" binding:"gte=0"`
	TimeWindow    string `json:"timeWindow"`
	Notes         string `json:"notes"`
}

func (r StopRequest) ToInput() usecase.StopInput {
	return usecase.StopInput{
		CustomerID:    strings.TrimSpace(r.CustomerID),
		EstimatedTime: r.EstimatedTime,
		TimeWindow:    r.TimeWindow,
		Notes:         r.Notes,
	}
}

// ReorderRequest lists every stop id of the route in its new order.
type ReorderRequest struct {
	StopIDs []string `json:"stopIds" binding:"required,min=1,dive,required"`
}
