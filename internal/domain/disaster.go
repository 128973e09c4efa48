package domain

import (
	"time"

	"github.com/google/uuid"
)

type DisasterType string

const (
	DisasterFlood      DisasterType = "flood"
	DisasterEarthquake DisasterType = "earthquake"
	DisasterFire       DisasterType = "fire"
	DisasterHurricane  DisasterType = "hurricane"
	DisasterOther      DisasterType = "other"
)

func (t DisasterType) IsValid() bool {
	switch t {
	case DisasterFlood, DisasterEarthquake, DisasterFire, DisasterHurricane, DisasterOther:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rank orders severities low to critical for sorting and tie-breaks.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return -1
}

type DisasterStatus string

const (
	StatusPending  DisasterStatus = "pending"
	StatusAccepted DisasterStatus = "accepted"
	StatusDeclined DisasterStatus = "declined"
	StatusResolved DisasterStatus = "resolved"
)

func (s DisasterStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusResolved:
		return true
	}
	return false
}

// CanTransitionTo encodes the report lifecycle: pending reports are accepted
// or declined by a volunteer, accepted reports are resolved by the assigned
// volunteer. Declined and resolved are terminal.
func (s DisasterStatus) CanTransitionTo(next DisasterStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusAccepted || next == StatusDeclined
	case StatusAccepted:
		return next == StatusResolved
	}
	return false
}

func (s DisasterStatus) IsTerminal() bool {
	return s == StatusDeclined || s == StatusResolved
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// IdentityRef is a reference to a user carried on a report. Reports reference
// users, they never own them.
type IdentityRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type DisasterReport struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        DisasterType   `json:"type"`
	Severity    Severity       `json:"severity"`
	Location    Location       `json:"location"`
	Status      DisasterStatus `json:"status"`
	ReportedBy  IdentityRef    `json:"reportedBy"`
	AssignedTo  *IdentityRef   `json:"assignedTo,omitempty"`
	ReportedAt  time.Time      `json:"reportedAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Images      []string       `json:"images,omitempty"`
}

type CreateDisasterInput struct {
	Title       string       `json:"title" validate:"required,min=3,max=200"`
	Description string       `json:"description" validate:"required,min=10,max=5000"`
	Type        DisasterType `json:"type" validate:"required,oneof=flood earthquake fire hurricane other"`
	Severity    Severity     `json:"severity" validate:"required,oneof=low medium high critical"`
	Address     string       `json:"address" validate:"required,min=5,max=500"`
	Images      []string     `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`

	// Ignored by the server, which stamps the authenticated reporter.
	// Kept so SPA-era payloads still parse.
	ReportedBy *IdentityRef `json:"reportedBy,omitempty"`
}

type UpdateStatusInput struct {
	Status      DisasterStatus `json:"status" validate:"required,oneof=pending accepted declined resolved"`
	VolunteerID *uuid.UUID     `json:"volunteerId,omitempty"`
}
