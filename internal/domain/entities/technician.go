package entities

import "time"

type Technician struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Status         TechnicianStatus `json:"status"`
	AssignedRoutes []Weekday        `json:"assignedRoutes"`
	CompletedJobs  int              `json:"completedJobs"`
	AvgServiceTime int              `json:"avgServiceTime"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (t Technician) CoversDay(day Weekday) bool {
	return contains(t.AssignedRoutes, day)
}

// RecordCompletion folds a finished job's duration into the running average.
func (t *Technician) RecordCompletion(actualMinutes int, now time.Time) {
	if actualMinutes > 0 {
		total := t.AvgServiceTime*t.CompletedJobs + actualMinutes
		t.AvgServiceTime = total / (t.CompletedJobs + 1)
	}
	t.CompletedJobs++
	t.UpdatedAt = now
}
