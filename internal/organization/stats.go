package organization

import "math"

// Stats holds the directory header aggregates.
type Stats struct {
	Total        int `json:"total"`
	ServiceCount int `json:"service_count"`
	Available    int `json:"available"`
	AverageScore int `json:"average_score"`
}

// CountByAvailability returns how many organizations are in the given
// availability state.
func CountByAvailability(orgs []Organization, availability Availability) int {
	count := 0
	for _, org := range orgs {
		if org.AvailabilityStatus == availability {
			count++
		}
	}
	return count
}

// ServiceCount sums the services offered across the collection.
func ServiceCount(orgs []Organization) int {
	count := 0
	for _, org := range orgs {
		count += len(org.Services)
	}
	return count
}

// AverageScore returns the mean rse_score rounded to the nearest integer,
// explicitly 0 for an empty collection.
func AverageScore(orgs []Organization) int {
	if len(orgs) == 0 {
		return 0
	}
	sum := 0
	for _, org := range orgs {
		sum += org.RSEScore
	}
	return int(math.Round(float64(sum) / float64(len(orgs))))
}

// ComputeStats aggregates the full header set for a collection.
func ComputeStats(orgs []Organization) Stats {
	return Stats{
		Total:        len(orgs),
		ServiceCount: ServiceCount(orgs),
		Available:    CountByAvailability(orgs, AvailabilityDisponible),
		AverageScore: AverageScore(orgs),
	}
}
