package domain

import (
	"errors"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusLive      JobStatus = "live"
	JobStatusFilled    JobStatus = "filled"
	JobStatusCompleted JobStatus = "completed"
)

var ErrJobNotFound = errors.New("job not found")
var ErrJobNotLive = errors.New("job is not open for applications")
var ErrAllSlotsFilled = errors.New("all slots filled")
var ErrInvalidSchedule = errors.New("end time must be after start time")
var ErrForbidden = errors.New("access forbidden")

// Job is a posting by a production manager looking for marshals.
// SlotsFilled is mutated only through JobRepository.ClaimSlot/ReleaseSlot,
// which enforce 0 <= slots_filled <= slots_needed at the storage layer.
type Job struct {
	ID             string    `json:"id" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	ProductionName string    `json:"production_name,omitempty" bson:"production_name,omitempty"`
	Location       string    `json:"location" bson:"location"`
	Date           string    `json:"date" bson:"date"`             // YYYY-MM-DD
	StartTime      string    `json:"start_time" bson:"start_time"` // HH:MM
	EndTime        string    `json:"end_time" bson:"end_time"`     // HH:MM
	DayRate        int       `json:"day_rate" bson:"day_rate"`
	SlotsNeeded    int       `json:"slots_needed" bson:"slots_needed"`
	SlotsFilled    int       `json:"slots_filled" bson:"slots_filled"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	Requirements   string    `json:"requirements,omitempty" bson:"requirements,omitempty"`
	IsUrgent       bool      `json:"is_urgent" bson:"is_urgent"`
	Status         JobStatus `json:"status" bson:"status"`
	PostedBy       string    `json:"posted_by" bson:"posted_by"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// SlotsRemaining returns the number of unclaimed slots.
func (j *Job) SlotsRemaining() int {
	return j.SlotsNeeded - j.SlotsFilled
}

// IsOpen reports whether the job can still receive applications.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusLive && j.SlotsRemaining() > 0
}
