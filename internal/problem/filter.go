package problem

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of a filtered problem list.
type SortKey string

const (
	SortRecency    SortKey = "recent"
	SortOldest     SortKey = "oldest"
	SortDangerHigh SortKey = "danger-high"
	SortDangerLow  SortKey = "danger-low"
	SortLocation   SortKey = "location"
)

// ParseSortKey returns the matching sort key, defaulting to recency.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortDangerHigh, SortDangerLow, SortLocation:
		return SortKey(s)
	}
	return SortRecency
}

// FilterState holds the active problem list filters. Empty or "all" values
// are inactive and never exclude anything.
type FilterState struct {
	Search      string `json:"search"`
	Status      string `json:"status"`
	DangerLevel string `json:"danger_level"`
}

const filterAll = "all"

func filterActive(v string) bool {
	return v != "" && !strings.EqualFold(v, filterAll)
}

// ActiveCount returns how many filter dimensions are currently active.
func (f FilterState) ActiveCount() int {
	count := 0
	if f.Search != "" {
		count++
	}
	if filterActive(f.Status) {
		count++
	}
	if filterActive(f.DangerLevel) {
		count++
	}
	return count
}

func (f FilterState) matches(p Problem) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}

	// Malformed enum values never satisfy an active filter: the entity's
	// parsed variant is Unknown, which cannot equal a known filter value.
	if filterActive(f.Status) {
		if !p.Status.Known() || !strings.EqualFold(string(p.Status), f.Status) {
			return false
		}
	}
	if filterActive(f.DangerLevel) {
		if !p.DangerLevel.Known() || !strings.EqualFold(string(p.DangerLevel), f.DangerLevel) {
			return false
		}
	}

	return true
}

// ApplyFilter returns the subsequence of problems satisfying every active
// filter, ordered by the sort key. Ordering is stable: problems with equal
// sort keys keep their input order. The input slice is never mutated.
func ApplyFilter(problems []Problem, f FilterState, key SortKey) []Problem {
	out := make([]Problem, 0, len(problems))
	for _, p := range problems {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	sortProblems(out, key)
	return out
}

// dangerRank orders severity for the danger sorts; malformed levels sink
// below low.
func dangerRank(d DangerLevel) int {
	switch d {
	case DangerHigh:
		return 3
	case DangerMedium:
		return 2
	case DangerLow:
		return 1
	}
	return 0
}

func sortProblems(problems []Problem, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(problems, func(i, j int) bool {
			return problems[i].CreatedAt.Before(problems[j].CreatedAt)
		})
	case SortDangerHigh:
		sort.SliceStable(problems, func(i, j int) bool {
			return dangerRank(problems[i].DangerLevel) > dangerRank(problems[j].DangerLevel)
		})
	case SortDangerLow:
		sort.SliceStable(problems, func(i, j int) bool {
			return dangerRank(problems[i].DangerLevel) < dangerRank(problems[j].DangerLevel)
		})
	case SortLocation:
		sort.SliceStable(problems, func(i, j int) bool {
			return strings.ToLower(problems[i].Location) < strings.ToLower(problems[j].Location)
		})
	default:
		sort.SliceStable(problems, func(i, j int) bool {
			return problems[i].CreatedAt.After(problems[j].CreatedAt)
		})
	}
}

// Markers projects the problems that carry coordinates into map markers,
// preserving order.
func Markers(problems []Problem) []Marker {
	markers := make([]Marker, 0, len(problems))
	for _, p := range problems {
		if p.LocationLat == nil || p.LocationLng == nil {
			continue
		}
		markers = append(markers, Marker{
			ID:          p.ID,
			Title:       p.Title,
			Lat:         *p.LocationLat,
			Lng:         *p.LocationLng,
			DangerLevel: p.DangerLevel,
			Status:      p.Status,
		})
	}
	return markers
}
