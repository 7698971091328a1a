package problem

import "math"

// Stats holds the aggregate counters shown on the dashboard. All values are
// recomputed from scratch on every call; collections are hundreds of rows,
// not millions.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"in_progress"`
	Resolved       int `json:"resolved"`
	Cancelled      int `json:"cancelled"`
	LowDanger      int `json:"low_danger"`
	MediumDanger   int `json:"medium_danger"`
	HighDanger     int `json:"high_danger"`
	ResolutionRate int `json:"resolution_rate"`
}

// CountByStatus returns how many problems carry the given status.
func CountByStatus(problems []Problem, status Status) int {
	count := 0
	for _, p := range problems {
		if p.Status == status {
			count++
		}
	}
	return count
}

// CountByDangerLevel returns how many problems carry the given danger level.
func CountByDangerLevel(problems []Problem, level DangerLevel) int {
	count := 0
	for _, p := range problems {
		if p.DangerLevel == level {
			count++
		}
	}
	return count
}

// ResolutionRate returns round(100 * resolved / total) as a percentage in
// [0,100]. The empty collection is explicitly 0, never NaN.
func ResolutionRate(problems []Problem) int {
	total := len(problems)
	if total == 0 {
		return 0
	}
	resolved := CountByStatus(problems, StatusResolved)
	return int(math.Round(100 * float64(resolved) / float64(total)))
}

// ComputeStats aggregates the full counter set for a collection.
func ComputeStats(problems []Problem) Stats {
	return Stats{
		Total:          len(problems),
		Pending:        CountByStatus(problems, StatusPending),
		InProgress:     CountByStatus(problems, StatusInProgress),
		Resolved:       CountByStatus(problems, StatusResolved),
		Cancelled:      CountByStatus(problems, StatusCancelled),
		LowDanger:      CountByDangerLevel(problems, DangerLow),
		MediumDanger:   CountByDangerLevel(problems, DangerMedium),
		HighDanger:     CountByDangerLevel(problems, DangerHigh),
		ResolutionRate: ResolutionRate(problems),
	}
}
