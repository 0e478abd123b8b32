package domain

import (
	"errors"
	"time"
)

// ApplicationStatus represents the lifecycle state of an application.
// pending -> accepted and pending -> declined are the only transitions;
// both decided states are terminal.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationDeclined ApplicationStatus = "declined"
)

var ErrApplicationNotFound = errors.New("application not found")
var ErrAlreadyApplied = errors.New("application already exists for this job")
var ErrApplicationDecided = errors.New("application has already been decided")
var ErrInvalidDecision = errors.New("decision must be accepted or declined")

// IsDecision reports whether s is a valid decision a manager can take on a
// pending application.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationAccepted || s == ApplicationDeclined
}

// Application links a marshal to a job posting. At most one application
// exists per (job, applicant) pair, enforced by a unique compound index.
type Application struct {
	ID          string            `json:"id" bson:"_id"`
	JobID       string            `json:"job_id" bson:"job_id"`
	ApplicantID string            `json:"applicant_id" bson:"applicant_id"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	AppliedAt   time.Time         `json:"applied_at" bson:"applied_at"`
}

// DecisionEvent records a manager's accept/decline decision for the audit
// trail. Events are written asynchronously by the queue dispatcher.
type DecisionEvent struct {
	ApplicationID string
	JobID         string
	ApplicantID   string
	DecidedBy     string
	Status        ApplicationStatus
	DecidedAt     time.Time
}
