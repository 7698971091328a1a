package organization

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of the directory.
type SortKey string

const (
	SortRating   SortKey = "rating"
	SortRSEScore SortKey = "rse_score"
	// SortDistance approximates proximity by ordering cities
	// lexicographically; true geo distance is out of scope.
	SortDistance SortKey = "distance"
)

// ParseSortKey returns the matching sort key, defaulting to rating.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRSEScore, SortDistance:
		return SortKey(s)
	}
	return SortRating
}

// FilterState holds the directory filters for one session. Empty, zero,
// false and "all" values are inactive; an inactive dimension never excludes
// anything.
type FilterState struct {
	Search        string  `json:"search"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	Location      string  `json:"location"`
	Rating        float64 `json:"rating"`
	Availability  string  `json:"availability"`
	Certification bool    `json:"certification"`
	RSEScore      int     `json:"rse_score"`
}

const filterAll = "all"

func filterActive(v string) bool {
	return v != "" && !strings.EqualFold(v, filterAll)
}

// ActiveCount returns how many filter dimensions are currently active,
// the number behind the filter badge in the directory UI.
func (f FilterState) ActiveCount() int {
	count := 0
	if f.Search != "" {
		count++
	}
	if filterActive(f.Type) {
		count++
	}
	if filterActive(f.Category) {
		count++
	}
	if filterActive(f.Location) {
		count++
	}
	if f.Rating > 0 {
		count++
	}
	if filterActive(f.Availability) {
		count++
	}
	if f.Certification {
		count++
	}
	if f.RSEScore > 0 {
		count++
	}
	return count
}

func (f FilterState) matches(org Organization) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(org.Name), q) &&
			!strings.Contains(strings.ToLower(org.City), q) &&
			!specialtyMatches(org.Specialties, q) {
			return false
		}
	}

	// Entities whose enum fields failed to parse are excluded by an active
	// filter on that field and pass when the filter is inactive.
	if filterActive(f.Type) {
		if !org.Type.Known() || !strings.EqualFold(string(org.Type), f.Type) {
			return false
		}
	}
	if filterActive(f.Category) {
		if !org.Category.Known() || !strings.EqualFold(string(org.Category), f.Category) {
			return false
		}
	}
	if filterActive(f.Location) {
		if !strings.EqualFold(org.City, f.Location) {
			return false
		}
	}
	if org.Rating < f.Rating {
		return false
	}
	if filterActive(f.Availability) {
		if !org.AvailabilityStatus.Known() || !strings.EqualFold(string(org.AvailabilityStatus), f.Availability) {
			return false
		}
	}
	if f.Certification && len(org.Certifications) == 0 {
		return false
	}
	// Inclusive threshold: rse_score 85 passes a filter of 85.
	if org.RSEScore < f.RSEScore {
		return false
	}

	return true
}

func specialtyMatches(specialties []string, q string) bool {
	for _, s := range specialties {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// ApplyFilter returns the organizations satisfying every active filter,
// ordered by the sort key. The sort is stable so equal keys keep their
// input order, and the input slice is never mutated.
func ApplyFilter(orgs []Organization, f FilterState, key SortKey) []Organization {
	out := make([]Organization, 0, len(orgs))
	for _, org := range orgs {
		if f.matches(org) {
			out = append(out, org)
		}
	}
	sortOrganizations(out, key)
	return out
}

func sortOrganizations(orgs []Organization, key SortKey) {
	switch key {
	case SortRSEScore:
		sort.SliceStable(orgs, func(i, j int) bool {
			return orgs[i].RSEScore > orgs[j].RSEScore
		})
	case SortDistance:
		sort.SliceStable(orgs, func(i, j int) bool {
			return strings.ToLower(orgs[i].City) < strings.ToLower(orgs[j].City)
		})
	default:
		sort.SliceStable(orgs, func(i, j int) bool {
			return orgs[i].Rating > orgs[j].Rating
		})
	}
}
