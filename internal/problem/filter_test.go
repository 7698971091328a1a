package problem

import (
	"testing"
	"time"
)

func sampleProblems() []Problem {
	lat, lng := 36.8065, 10.1815
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Problem{
		{
			ID:          "p-1",
			Title:       "Décharge sauvage",
			Description: "Accumulation de déchets près du parc",
			Location:    "Tunis",
			LocationLat: &lat,
			LocationLng: &lng,
			DangerLevel: DangerHigh,
			Status:      StatusPending,
			CreatedAt:   base,
		},
		{
			ID:          "p-2",
			Title:       "Fuite d'eau",
			Description: "Canalisation endommagée",
			Location:    "Sfax",
			DangerLevel: DangerMedium,
			Status:      StatusInProgress,
			CreatedAt:   base.Add(1 * time.Hour),
		},
		{
			ID:          "p-3",
			Title:       "Pollution de l'air",
			Description: "Fumées d'usine",
			Location:    "Gabès",
			DangerLevel: DangerHigh,
			Status:      StatusResolved,
			CreatedAt:   base.Add(2 * time.Hour),
		},
		{
			ID:          "p-4",
			Title:       "Arbres abattus",
			Description: "Coupe illégale dans la forêt",
			Location:    "Bizerte",
			DangerLevel: DangerLow,
			Status:      StatusPending,
			CreatedAt:   base.Add(3 * time.Hour),
		},
	}
}

// TestApplyFilter_NoFilters tests that an inactive filter returns everything sorted
func TestApplyFilter_NoFilters(t *testing.T) {
	problems := sampleProblems()

	result := ApplyFilter(problems, FilterState{}, SortRecency)

	if len(result) != len(problems) {
		t.Fatalf("Expected %d problems, got %d", len(problems), len(result))
	}
	// Most recent first
	if result[0].ID != "p-4" {
		t.Errorf("Expected most recent problem first, got '%s'", result[0].ID)
	}
	if result[len(result)-1].ID != "p-1" {
		t.Errorf("Expected oldest problem last, got '%s'", result[len(result)-1].ID)
	}
}

// TestApplyFilter_AllSentinel tests that "all" behaves like no filter
func TestApplyFilter_AllSentinel(t *testing.T) {
	problems := sampleProblems()

	f := FilterState{Status: "all", DangerLevel: "all"}
	result := ApplyFilter(problems, f, SortRecency)

	if len(result) != len(problems) {
		t.Errorf("Expected %d problems with 'all' filters, got %d", len(problems), len(result))
	}
	if f.ActiveCount() != 0 {
		t.Errorf("Expected 0 active filters, got %d", f.ActiveCount())
	}
}

// TestApplyFilter_Search tests case-insensitive search over title, location, description
func TestApplyFilter_Search(t *testing.T) {
	problems := sampleProblems()

	testCases := []struct {
		name     string
		search   string
		expected []string
	}{
		{"Title match", "décharge", []string{"p-1"}},
		{"Location match case-insensitive", "SFAX", []string{"p-2"}},
		{"Description match", "usine", []string{"p-3"}},
		{"No match", "zzz", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ApplyFilter(problems, FilterState{Search: tc.search}, SortRecency)
			if len(result) != len(tc.expected) {
				t.Fatalf("Expected %d results, got %d", len(tc.expected), len(result))
			}
			for i, id := range tc.expected {
				if result[i].ID != id {
					t.Errorf("Expected result[%d] = '%s', got '%s'", i, id, result[i].ID)
				}
			}
		})
	}
}

// TestApplyFilter_Conjunction tests that active filters combine with AND
func TestApplyFilter_Conjunction(t *testing.T) {
	problems := sampleProblems()

	f := FilterState{Status: "pending", DangerLevel: "high"}
	result := ApplyFilter(problems, f, SortRecency)

	if len(result) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(result))
	}
	if result[0].ID != "p-1" {
		t.Errorf("Expected 'p-1', got '%s'", result[0].ID)
	}
	if f.ActiveCount() != 2 {
		t.Errorf("Expected 2 active filters, got %d", f.ActiveCount())
	}
}

// TestApplyFilter_MalformedEnum tests that unknown stored values never satisfy
// an active enum filter but survive when the filter is inactive
func TestApplyFilter_MalformedEnum(t *testing.T) {
	problems := []Problem{
		{ID: "ok", Status: StatusPending, DangerLevel: DangerLow},
		{ID: "bad", Status: ParseStatus("garbage"), DangerLevel: ParseDangerLevel("nope")},
	}

	// Inactive filter keeps the malformed entity
	all := ApplyFilter(problems, FilterState{}, SortRecency)
	if len(all) != 2 {
		t.Errorf("Expected malformed entity to survive inactive filters, got %d results", len(all))
	}

	// Active filter excludes it
	filtered := ApplyFilter(problems, FilterState{Status: "pending"}, SortRecency)
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 result under active status filter, got %d", len(filtered))
	}
	if filtered[0].ID != "ok" {
		t.Errorf("Expected 'ok', got '%s'", filtered[0].ID)
	}

	// Even filtering for "unknown" does not match the degraded variant
	unknown := ApplyFilter(problems, FilterState{Status: "unknown"}, SortRecency)
	if len(unknown) != 0 {
		t.Errorf("Expected no matches for 'unknown' status filter, got %d", len(unknown))
	}
}

// TestApplyFilter_SortByLocation tests lexicographic location ordering
func TestApplyFilter_SortByLocation(t *testing.T) {
	problems := sampleProblems()

	result := ApplyFilter(problems, FilterState{}, SortLocation)

	expected := []string{"p-4", "p-3", "p-2", "p-1"} // Bizerte, Gabès, Sfax, Tunis
	for i, id := range expected {
		if result[i].ID != id {
			t.Errorf("Expected result[%d] = '%s', got '%s'", i, id, result[i].ID)
		}
	}
}

// TestApplyFilter_SortByOldest tests chronological ordering
func TestApplyFilter_SortByOldest(t *testing.T) {
	problems := sampleProblems()

	result := ApplyFilter(problems, FilterState{}, SortOldest)

	expected := []string{"p-1", "p-2", "p-3", "p-4"}
	for i, id := range expected {
		if result[i].ID != id {
			t.Errorf("Expected result[%d] = '%s', got '%s'", i, id, result[i].ID)
		}
	}
}

// TestApplyFilter_SortByDanger tests severity ordering in both directions,
// with ties keeping input order
func TestApplyFilter_SortByDanger(t *testing.T) {
	problems := sampleProblems()

	descending := ApplyFilter(problems, FilterState{}, SortDangerHigh)
	for i, id := range []string{"p-1", "p-3", "p-2", "p-4"} {
		if descending[i].ID != id {
			t.Errorf("Expected descending[%d] = '%s', got '%s'", i, id, descending[i].ID)
		}
	}

	ascending := ApplyFilter(problems, FilterState{}, SortDangerLow)
	for i, id := range []string{"p-4", "p-2", "p-1", "p-3"} {
		if ascending[i].ID != id {
			t.Errorf("Expected ascending[%d] = '%s', got '%s'", i, id, ascending[i].ID)
		}
	}
}

// TestApplyFilter_SortByDanger_MalformedLevel tests that a malformed severity
// sinks below low
func TestApplyFilter_SortByDanger_MalformedLevel(t *testing.T) {
	problems := []Problem{
		{ID: "bad", DangerLevel: ParseDangerLevel("garbage")},
		{ID: "low", DangerLevel: DangerLow},
	}

	result := ApplyFilter(problems, FilterState{}, SortDangerHigh)
	if result[0].ID != "low" || result[1].ID != "bad" {
		t.Errorf("Expected malformed severity last, got %s, %s", result[0].ID, result[1].ID)
	}
}

// TestApplyFilter_SortIdempotent tests that re-sorting an already sorted
// list changes nothing
func TestApplyFilter_SortIdempotent(t *testing.T) {
	problems := sampleProblems()

	for _, key := range []SortKey{SortRecency, SortOldest, SortDangerHigh, SortDangerLow, SortLocation} {
		once := ApplyFilter(problems, FilterState{}, key)
		twice := ApplyFilter(once, FilterState{}, key)
		for i := range once {
			if twice[i].ID != once[i].ID {
				t.Errorf("Sort '%s' not idempotent at %d: '%s' vs '%s'", key, i, once[i].ID, twice[i].ID)
			}
		}
	}
}

// TestApplyFilter_Partition tests that every input problem either appears in
// the output or fails the active filters
func TestApplyFilter_Partition(t *testing.T) {
	problems := sampleProblems()
	f := FilterState{Status: "pending"}

	result := ApplyFilter(problems, f, SortRecency)

	kept := map[string]bool{}
	for _, p := range result {
		kept[p.ID] = true
		if !f.matches(p) {
			t.Errorf("Kept problem '%s' does not satisfy the filter", p.ID)
		}
	}
	for _, p := range problems {
		if !kept[p.ID] && f.matches(p) {
			t.Errorf("Excluded problem '%s' satisfies the filter", p.ID)
		}
	}
	if len(kept) == 0 || len(kept) == len(problems) {
		t.Fatalf("Expected a proper partition, kept %d of %d", len(kept), len(problems))
	}
}

// TestApplyFilter_StableSort tests that equal sort keys keep input order
func TestApplyFilter_StableSort(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	problems := []Problem{
		{ID: "a", Location: "Tunis", CreatedAt: ts},
		{ID: "b", Location: "Tunis", CreatedAt: ts},
		{ID: "c", Location: "Tunis", CreatedAt: ts},
	}

	result := ApplyFilter(problems, FilterState{}, SortRecency)
	for i, id := range []string{"a", "b", "c"} {
		if result[i].ID != id {
			t.Errorf("Expected stable order at %d: '%s', got '%s'", i, id, result[i].ID)
		}
	}
}

// TestApplyFilter_InputNotMutated tests that the source slice keeps its order
func TestApplyFilter_InputNotMutated(t *testing.T) {
	problems := sampleProblems()
	original := make([]Problem, len(problems))
	copy(original, problems)

	ApplyFilter(problems, FilterState{}, SortLocation)

	for i := range original {
		if problems[i].ID != original[i].ID {
			t.Fatalf("Input slice mutated at index %d", i)
		}
	}
}

// TestApplyFilter_EmptyInput tests the empty collection
func TestApplyFilter_EmptyInput(t *testing.T) {
	result := ApplyFilter(nil, FilterState{Search: "anything"}, SortRecency)
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d", len(result))
	}
}

// TestMarkers_RequiresCoordinates tests that only coordinate-bearing problems
// produce markers
func TestMarkers_RequiresCoordinates(t *testing.T) {
	problems := sampleProblems()

	markers := Markers(problems)

	if len(markers) != 1 {
		t.Fatalf("Expected 1 marker, got %d", len(markers))
	}
	if markers[0].ID != "p-1" {
		t.Errorf("Expected marker for 'p-1', got '%s'", markers[0].ID)
	}
	if markers[0].Lat != 36.8065 || markers[0].Lng != 10.1815 {
		t.Errorf("Unexpected coordinates: %f, %f", markers[0].Lat, markers[0].Lng)
	}
}

// TestParseSortKey tests sort key parsing with recency default
func TestParseSortKey(t *testing.T) {
	if ParseSortKey("location") != SortLocation {
		t.Error("Expected 'location' to parse as SortLocation")
	}
	if ParseSortKey("oldest") != SortOldest {
		t.Error("Expected 'oldest' to parse as SortOldest")
	}
	if ParseSortKey("danger-high") != SortDangerHigh {
		t.Error("Expected 'danger-high' to parse as SortDangerHigh")
	}
	if ParseSortKey("danger-low") != SortDangerLow {
		t.Error("Expected 'danger-low' to parse as SortDangerLow")
	}
	if ParseSortKey("recent") != SortRecency {
		t.Error("Expected 'recent' to parse as SortRecency")
	}
	if ParseSortKey("") != SortRecency {
		t.Error("Expected empty key to default to SortRecency")
	}
	if ParseSortKey("bogus") != SortRecency {
		t.Error("Expected unknown key to default to SortRecency")
	}
}
