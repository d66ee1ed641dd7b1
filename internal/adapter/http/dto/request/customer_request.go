package request

import (
	"strings"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"

	"github.com/shopspring/decimal"
)

type CustomerRequest struct {
	Name           string          `json:"name" binding:"required"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Status         string          `json:"status" binding:"omitempty,oneof=active paused inactive"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	ServiceDay     string          `json:"serviceDay" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	RoutePosition  int             `json:"routePosition" binding:"gte=0"`
	Autopay        bool            `json:"autopay"`
}

func (r CustomerRequest) ToInput() usecase.CustomerInput {
	return usecase.CustomerInput{
		Name:           strings.TrimSpace(r.Name),
		Email:          strings.TrimSpace(r.Email),
		Phone:          strings.TrimSpace(r.Phone),
		Address:        strings.TrimSpace(r.Address),
		Status:         entities.CustomerStatus(r.Status),
		AccountBalance: r.AccountBalance,
		ServiceDay:     entities.Weekday(r.ServiceDay),
		RoutePosition:  r.RoutePosition,
		Autopay:        r.Autopay,
	}
}

type PoolRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type"`
	Color     string   `json:"color"`
	Gallons   int      `json:"gallons" binding:"gte=0"`
	Equipment []string `json:"equipment"`
}

func (r PoolRequest) ToInput() usecase.PoolInput {
	return usecase.PoolInput{
		Name:      strings.TrimSpace(r.Name),
		Type:      r.Type,
		Color:     r.Color,
		Gallons:   r.Gallons,
		Equipment: r.Equipment,
	}
}

// ReadingRequest is a water test as entered in the field. A missing date
// is filled with today by the use case.
type ReadingRequest struct {
	Date entities.Date `json:"date"`
	FC   float64       `json:"fc" binding:"gte=0,lte=50"`
	PH   float64       `json:"ph" binding:"gte=0,lte=14"`
	TA   int           `json:"ta" binding:"gte=0"`
	CH   int           `json:"ch" binding:"gte=0"`
	CYA  int           `json:"cya" binding:"gte=0"`
}

func (r ReadingRequest) ToReading() entities.ChemReading {
	return entities.ChemReading{Date: r.Date, FC: r.FC, PH: r.PH, TA: r.TA, CH: r.CH, CYA: r.CYA}
}
