package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Problem events
	EventProblemReported      = "problem.reported"
	EventProblemStatusChanged = "problem.status_changed"

	// Organization events
	EventOrganizationRegistered   = "organization.registered"
	EventOrganizationServiceAdded = "organization.service_added"

	// Onboarding events
	EventOnboardingCompleted = "onboarding.completed"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// ProblemReportedEvent is emitted when a citizen files a new report
type ProblemReportedEvent struct {
	BaseEvent
	Data ProblemReportedData `json:"data"`
}

type ProblemReportedData struct {
	ProblemID   string    `json:"problem_id"`
	ReporterID  string    `json:"reporter_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	DangerLevel string    `json:"danger_level"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProblemStatusChangedEvent is emitted when a problem moves through the
// remediation workflow
type ProblemStatusChangedEvent struct {
	BaseEvent
	Data ProblemStatusChangedData `json:"data"`
}

type ProblemStatusChangedData struct {
	ProblemID string    `json:"problem_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrganizationRegisteredEvent is emitted when an organization signs up for
// the directory (still unverified at this point)
type OrganizationRegisteredEvent struct {
	BaseEvent
	Data OrganizationRegisteredData `json:"data"`
}

type OrganizationRegisteredData struct {
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	City           string    `json:"city"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// OrganizationServiceAddedEvent is emitted when an organization adds a
// service to its catalog
type OrganizationServiceAddedEvent struct {
	BaseEvent
	Data OrganizationServiceAddedData `json:"data"`
}

type OrganizationServiceAddedData struct {
	ServiceID      string    `json:"service_id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	AddedAt        time.Time `json:"added_at"`
}

// OnboardingCompletedEvent is emitted when a user finishes the onboarding
// wizard, carrying the accumulated selections
type OnboardingCompletedEvent struct {
	BaseEvent
	Data OnboardingCompletedData `json:"data"`
}

type OnboardingCompletedData struct {
	UserID      string    `json:"user_id"`
	Interests   []string  `json:"interests"`
	Activities  []string  `json:"activities"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "ecolink-api",
	}
}
