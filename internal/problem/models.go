package problem

import "time"

// DangerLevel classifies the severity of a reported problem.
type DangerLevel string

const (
	DangerLow     DangerLevel = "low"
	DangerMedium  DangerLevel = "medium"
	DangerHigh    DangerLevel = "high"
	DangerUnknown DangerLevel = "unknown"
)

// ParseDangerLevel maps raw text from the store to a closed variant.
// Anything outside the known set degrades to DangerUnknown instead of
// breaking rendering or filtering downstream.
func ParseDangerLevel(s string) DangerLevel {
	switch DangerLevel(s) {
	case DangerLow, DangerMedium, DangerHigh:
		return DangerLevel(s)
	}
	return DangerUnknown
}

// Known reports whether the level is one of the enumerated values.
func (d DangerLevel) Known() bool {
	return d == DangerLow || d == DangerMedium || d == DangerHigh
}

// Status is the workflow state of a problem.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusCancelled  Status = "cancelled"
	StatusUnknown    Status = "unknown"
)

// ParseStatus maps raw text from the store to a closed variant.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusResolved, StatusCancelled:
		return Status(s)
	}
	return StatusUnknown
}

// Known reports whether the status is one of the enumerated values.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusCancelled:
		return true
	}
	return false
}

// Problem represents a citizen-reported environmental problem
type Problem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	LocationLat *float64    `json:"location_lat,omitempty"`
	LocationLng *float64    `json:"location_lng,omitempty"`
	DangerLevel DangerLevel `json:"danger_level"`
	Status      Status      `json:"status"`
	ImageURL    string      `json:"image_url,omitempty"`
	ReporterID  string      `json:"reporter_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateProblemRequest represents the request to report a new problem
type CreateProblemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	LocationLat *float64 `json:"location_lat,omitempty"`
	LocationLng *float64 `json:"location_lng,omitempty"`
	DangerLevel string   `json:"danger_level"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// Marker is the reduced shape served to the map layer. Only problems
// carrying coordinates produce markers.
type Marker struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	DangerLevel DangerLevel `json:"danger_level"`
	Status      Status      `json:"status"`
}
