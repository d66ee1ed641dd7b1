package request

import (
	"strings"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"
)

type TechnicianRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"omitempty,email"`
	Phone          string   `json:"phone"`
	Status         string   `json:"status" binding:"omitempty,oneof=active inactive"`
	AssignedRoutes []string `json:"assignedRoutes" binding:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

func (r TechnicianRequest) ToInput() usecase.TechnicianInput {
	days := make([]entities.Weekday, 0, len(r.AssignedRoutes))
	for _, d := range r.AssignedRoutes {
		days = append(days, entities.Weekday(d))
	}
	return usecase.TechnicianInput{
		Name:           strings.TrimSpace(r.Name),
		Email:          strings.TrimSpace(r.Email),
		Phone:          strings.TrimSpace(r.Phone),
		Status:         entities.TechnicianStatus(r.Status),
		AssignedRoutes: days,
	}
}
