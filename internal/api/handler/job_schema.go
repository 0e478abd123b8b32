package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createJobRequest struct {
	Title          string `json:"title"           validate:"required"`
	ProductionName string `json:"production_name"`
	Location       string `json:"location"        validate:"required"`
	Date           string `json:"date"            validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time"      validate:"omitempty,datetime=15:04"`
	EndTime        string `json:"end_time"        validate:"omitempty,datetime=15:04"`
	DayRate        int    `json:"day_rate"        validate:"required,gt=0"`
	SlotsNeeded    int    `json:"slots_needed"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	IsUrgent       bool   `json:"is_urgent"`
}

type jobLinks struct {
	Self       string `json:"self"`
	Applicants string `json:"applicants,omitempty"`
}

type jobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ProductionName string    `json:"production_name,omitempty"`
	Location       string    `json:"location"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time,omitempty"`
	EndTime        string    `json:"end_time,omitempty"`
	DayRate        int       `json:"day_rate"`
	SlotsNeeded    int       `json:"slots_needed"`
	SlotsFilled    int       `json:"slots_filled"`
	SlotsRemaining int       `json:"slots_remaining"`
	Description    string    `json:"description,omitempty"`
	Requirements   string    `json:"requirements,omitempty"`
	IsUrgent       bool      `json:"is_urgent"`
	Status         string    `json:"status"`
	PostedBy       string    `json:"posted_by"`
	CreatedAt      time.Time `json:"created_at"`
	Links          jobLinks  `json:"_links"`
}

type listJobsResponse struct {
	Data []jobResponse `json:"data"`
}
