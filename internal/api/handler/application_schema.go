package handler

import "time"

type decideRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type applicationResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

type applicantProfileResponse struct {
	FullName        string  `json:"full_name"`
	Location        string  `json:"location,omitempty"`
	AvgRating       float64 `json:"avg_rating"`
	TotalJobs       int     `json:"total_jobs"`
	ReliabilityPct  int     `json:"reliability_pct"`
	HasSIA          bool    `json:"has_sia"`
	HasCSCS         bool    `json:"has_cscs"`
	HasFirstAid     bool    `json:"has_first_aid"`
	HasOwnTransport bool    `json:"has_own_transport"`
	DayRateMin      int     `json:"day_rate_min"`
	DayRateMax      int     `json:"day_rate_max"`
}

type jobApplicantResponse struct {
	ApplicationID string                   `json:"application_id"`
	ApplicantID   string                   `json:"applicant_id"`
	Status        string                   `json:"status"`
	AppliedAt     time.Time                `json:"applied_at"`
	Profile       applicantProfileResponse `json:"profile"`
}

type listApplicantsResponse struct {
	Data []jobApplicantResponse `json:"data"`
}

type jobSummaryResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ProductionName string `json:"production_name,omitempty"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	DayRate        int    `json:"day_rate"`
	IsUrgent       bool   `json:"is_urgent"`
	Status         string `json:"status"`
}

type myApplicationResponse struct {
	ApplicationID string             `json:"application_id"`
	Status        string             `json:"status"`
	AppliedAt     time.Time          `json:"applied_at"`
	Job           jobSummaryResponse `json:"job"`
}

type listMyApplicationsResponse struct {
	Data []myApplicationResponse `json:"data"`
}
