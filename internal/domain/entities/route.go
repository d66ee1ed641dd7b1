package entities

import (
	"fmt"
	"strings"
	"time"
)

type Stop struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customerId"`
	CustomerName  string     `json:"customerName"`
	Address       string     `json:"address"`
	Position      int        `json:"position"`
	EstimatedTime int        `json:"estimatedTime"`
	Status        StopStatus `json:"status"`
	TimeWindow    string     `json:"timeWindow"`
	Notes         string     `json:"notes"`
}

func (s *Stop) Start() error {
	if s.Status != StopStatusScheduled {
		return transitionError("stop", s.ID, s.Status, StopStatusInProgress)
	}
	s.Status = StopStatusInProgress
	return nil
}

func (s *Stop) Complete() error {
	if s.Status != StopStatusInProgress {
		return transitionError("stop", s.ID, s.Status, StopStatusCompleted)
	}
	s.Status = StopStatusCompleted
	return nil
}

// Route is a technician's ordered visits for one weekday. Stop positions
// always form the dense sequence 1..N in slice order.
type Route struct {
	ID             string    `json:"id"`
	Day            Weekday   `json:"day"`
	TechnicianID   string    `json:"technicianId"`
	TechnicianName string    `json:"technicianName"`
	Stops          []Stop    `json:"stops"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func RouteKey(day Weekday, technicianID string) string {
	return string(day) + "/" + technicianID
}

func (r Route) Key() string { return RouteKey(r.Day, r.TechnicianID) }

// RouteID is the URL-safe identifier of the (day, technician) route.
func RouteID(day Weekday, technicianID string) string {
	return "route-" + strings.ToLower(string(day)) + "-" + technicianID
}

func (r *Route) Renumber() {
	for i := range r.Stops {
		r.Stops[i].Position = i + 1
	}
}

// ValidatePositions checks the 1..N invariant without modifying the route.
func (r Route) ValidatePositions() error {
	seen := make(map[int]bool, len(r.Stops))
	for _, s := range r.Stops {
		if s.Position < 1 || s.Position > len(r.Stops) || seen[s.Position] {
			return fmt.Errorf("%w: position %d on route %s", ErrInvalidStopOrder, s.Position, r.Key())
		}
		seen[s.Position] = true
	}
	return nil
}

func (r *Route) Stop(stopID string) (*Stop, bool) {
	for i := range r.Stops {
		if r.Stops[i].ID == stopID {
			return &r.Stops[i], true
		}
	}
	return nil, false
}

// AddStop appends s as the last visit of the day.
func (r *Route) AddStop(s Stop) error {
	for _, existing := range r.Stops {
		if existing.CustomerID == s.CustomerID {
			return ErrDuplicateStop
		}
	}
	if s.Status == "" {
		s.Status = StopStatusScheduled
	}
	r.Stops = append(r.Stops, s)
	r.Renumber()
	return nil
}

func (r *Route) RemoveStop(stopID string) error {
	for i, s := range r.Stops {
		if s.ID == stopID {
			r.Stops = append(r.Stops[:i], r.Stops[i+1:]...)
			r.Renumber()
			return nil
		}
	}
	return ErrStopNotFound
}

// Reorder applies a new visiting order. stopIDs must be a permutation of
// the current stops.
func (r *Route) Reorder(stopIDs []string) error {
	if len(stopIDs) != len(r.Stops) {
		return fmt.Errorf("%w: expected %d stops, got %d", ErrInvalidStopOrder, len(r.Stops), len(stopIDs))
	}
	byID := make(map[string]Stop, len(r.Stops))
	for _, s := range r.Stops {
		byID[s.ID] = s
	}
	ordered := make([]Stop, 0, len(stopIDs))
	for _, id := range stopIDs {
		s, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated stop %q", ErrInvalidStopOrder, id)
		}
		delete(byID, id)
		ordered = append(ordered, s)
	}
	r.Stops = ordered
	r.Renumber()
	return nil
}
