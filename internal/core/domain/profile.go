package domain

import (
	"errors"
	"time"
)

// Role distinguishes the two actor kinds on the platform.
type Role string

const (
	RoleMarshal Role = "marshal"
	RoleManager Role = "manager"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists")
var ErrInvalidRole = errors.New("role must be marshal or manager")

// ParseRole maps free-form signup metadata to a Role. Anything unrecognised
// defaults to marshal, matching the provisioning fallback.
func ParseRole(s string) Role {
	if Role(s) == RoleManager {
		return RoleManager
	}
	return RoleMarshal
}

// Availability marks the weekdays a marshal will take work on.
type Availability struct {
	Mon bool `json:"mon" bson:"mon"`
	Tue bool `json:"tue" bson:"tue"`
	Wed bool `json:"wed" bson:"wed"`
	Thu bool `json:"thu" bson:"thu"`
	Fri bool `json:"fri" bson:"fri"`
	Sat bool `json:"sat" bson:"sat"`
	Sun bool `json:"sun" bson:"sun"`
}

// MarshalDetails is the role payload for marshal profiles.
type MarshalDetails struct {
	Phone             string       `json:"phone,omitempty" bson:"phone,omitempty"`
	Location          string       `json:"location,omitempty" bson:"location,omitempty"`
	Bio               string       `json:"bio,omitempty" bson:"bio,omitempty"`
	DayRateMin        int          `json:"day_rate_min" bson:"day_rate_min"`
	DayRateMax        int          `json:"day_rate_max" bson:"day_rate_max"`
	TravelRadiusMiles int          `json:"travel_radius_miles" bson:"travel_radius_miles"`
	HasSIA            bool         `json:"has_sia" bson:"has_sia"`
	HasCSCS           bool         `json:"has_cscs" bson:"has_cscs"`
	HasFirstAid       bool         `json:"has_first_aid" bson:"has_first_aid"`
	HasOwnTransport   bool         `json:"has_own_transport" bson:"has_own_transport"`
	Availability      Availability `json:"availability" bson:"availability"`
	AvgRating         float64      `json:"avg_rating" bson:"avg_rating"`
	TotalJobs         int          `json:"total_jobs" bson:"total_jobs"`
	ReliabilityPct    int          `json:"reliability_pct" bson:"reliability_pct"`
}

// ManagerDetails is the role payload for production manager profiles.
type ManagerDetails struct {
	Phone             string `json:"phone,omitempty" bson:"phone,omitempty"`
	Location          string `json:"location,omitempty" bson:"location,omitempty"`
	ProductionCompany string `json:"production_company,omitempty" bson:"production_company,omitempty"`
}

// Profile is the public identity of a platform user. Role is immutable after
// creation and selects which of the two payloads is set: exactly one of
// Marshal or Manager is non-nil.
type Profile struct {
	ID        string          `json:"id" bson:"_id"`
	Role      Role            `json:"role" bson:"role"`
	FullName  string          `json:"full_name" bson:"full_name"`
	Marshal   *MarshalDetails `json:"marshal,omitempty" bson:"marshal,omitempty"`
	Manager   *ManagerDetails `json:"manager,omitempty" bson:"manager,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewProfile builds a profile with the zero payload for the given role.
func NewProfile(id string, role Role, fullName string, now time.Time) *Profile {
	p := &Profile{
		ID:        id,
		Role:      role,
		FullName:  fullName,
		CreatedAt: now,
	}
	switch role {
	case RoleManager:
		p.Manager = &ManagerDetails{}
	default:
		p.Marshal = &MarshalDetails{}
	}
	return p
}
