package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChemReading is one water test. TA, CH and CYA are in ppm.
type ChemReading struct {
	Date Date    `json:"date"`
	FC   float64 `json:"fc"`
	PH   float64 `json:"ph"`
	TA   int     `json:"ta"`
	CH   int     `json:"ch"`
	CYA  int     `json:"cya"`
}

// Pool is a body of water at a customer's address.
//
// ChemReadings are kept most-recent-first so LatestReading is the head.
type Pool struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Color        string        `json:"color"`
	Gallons      int           `json:"gallons"`
	Equipment    []string      `json:"equipment"`
	LastService  Date          `json:"lastService"`
	ChemReadings []ChemReading `json:"chemReadings"`
}

func (p Pool) LatestReading() (ChemReading, bool) {
	if len(p.ChemReadings) == 0 {
		return ChemReading{}, false
	}
	return p.ChemReadings[0], true
}

// AddReading inserts r keeping the most-recent-first order. Readings with
// the same date keep their arrival order after the existing one.
func (p *Pool) AddReading(r ChemReading) {
	idx := len(p.ChemReadings)
	for i, existing := range p.ChemReadings {
		if existing.Date.Before(r.Date) {
			idx = i
			break
		}
	}
	p.ChemReadings = append(p.ChemReadings, ChemReading{})
	copy(p.ChemReadings[idx+1:], p.ChemReadings[idx:])
	p.ChemReadings[idx] = r
	if r.Date.After(p.LastService) {
		p.LastService = r.Date
	}
}

// Customer is a service account.
//
// AccountBalance sign convention: negative means the customer owes money,
// positive is a credit on the account.
type Customer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Status         CustomerStatus  `json:"status"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	ServiceDay     Weekday         `json:"serviceDay"`
	RoutePosition  int             `json:"routePosition"`
	Autopay        bool            `json:"autopay"`
	Pools          []Pool          `json:"pools"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (c *Customer) Pool(poolID string) (*Pool, bool) {
	for i := range c.Pools {
		if c.Pools[i].ID == poolID {
			return &c.Pools[i], true
		}
	}
	return nil, false
}

func (c Customer) Owes() bool { return c.AccountBalance.IsNegative() }

// Deactivate is the only way a customer leaves the books; records are
// never deleted.
func (c *Customer) Deactivate(now time.Time) {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = now
}
