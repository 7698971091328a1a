package problem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecolink-tn/ecolink-api/internal/pagination"
)

// TestReportProblem_Success tests successful problem creation
func TestReportProblem_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createProblemFunc: func(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
			return &Problem{
				ID:          "problem-123",
				Title:       req.Title,
				Description: req.Description,
				Location:    req.Location,
				DangerLevel: ParseDangerLevel(req.DangerLevel),
				Status:      StatusPending,
				ReporterID:  reporterID,
				CreatedAt:   time.Now(),
			}, nil
		},
	}

	service := NewService(mockRepo)

	req := CreateProblemRequest{
		Title:       "Décharge sauvage",
		Description: "Accumulation de déchets",
		Location:    "Tunis",
		DangerLevel: "high",
	}

	p, err := service.ReportProblem(context.Background(), req, "reporter-1")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p == nil {
		t.Fatal("Expected problem, got nil")
	}
	if p.Status != StatusPending {
		t.Errorf("Expected new report to start pending, got '%s'", p.Status)
	}
	if p.ReporterID != "reporter-1" {
		t.Errorf("Expected reporter 'reporter-1', got '%s'", p.ReporterID)
	}
}

// TestReportProblem_ValidationError tests required field validation
func TestReportProblem_ValidationError(t *testing.T) {
	createCalled := false
	mockRepo := &mockRepository{
		createProblemFunc: func(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
			createCalled = true
			return &Problem{}, nil
		},
	}

	service := NewService(mockRepo)

	testCases := []struct {
		name     string
		req      CreateProblemRequest
		expected error
	}{
		{
			name:     "Missing title",
			req:      CreateProblemRequest{Description: "d", Location: "l", DangerLevel: "low"},
			expected: ErrMissingTitle,
		},
		{
			name:     "Missing description",
			req:      CreateProblemRequest{Title: "t", Location: "l", DangerLevel: "low"},
			expected: ErrMissingDescription,
		},
		{
			name:     "Missing location",
			req:      CreateProblemRequest{Title: "t", Description: "d", DangerLevel: "low"},
			expected: ErrMissingLocation,
		},
		{
			name:     "Invalid danger level",
			req:      CreateProblemRequest{Title: "t", Description: "d", Location: "l", DangerLevel: "catastrophic"},
			expected: ErrInvalidDangerLevel,
		},
		{
			name:     "Empty danger level",
			req:      CreateProblemRequest{Title: "t", Description: "d", Location: "l"},
			expected: ErrInvalidDangerLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := service.ReportProblem(context.Background(), tc.req, "reporter-1")

			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
			if p != nil {
				t.Error("Expected nil problem")
			}
		})
	}

	if createCalled {
		t.Error("Expected repository to never be called for invalid requests")
	}
}

// TestReportProblem_InvalidatesCache tests that a successful create forces
// the next listing to reload from the repository
func TestReportProblem_InvalidatesCache(t *testing.T) {
	listCalls := 0
	stored := []Problem{{ID: "p-1", Title: "First", Status: StatusPending, DangerLevel: DangerLow}}

	mockRepo := &mockRepository{
		listProblemsFunc: func(ctx context.Context) ([]Problem, error) {
			listCalls++
			out := make([]Problem, len(stored))
			copy(out, stored)
			return out, nil
		},
		createProblemFunc: func(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
			p := Problem{ID: "p-2", Title: req.Title, Status: StatusPending, DangerLevel: ParseDangerLevel(req.DangerLevel)}
			stored = append(stored, p)
			return &p, nil
		},
	}

	service := NewService(mockRepo)
	params := pagination.Params{Page: 1, Limit: 10}

	// First listing loads the cache
	result, err := service.ListProblems(context.Background(), FilterState{}, SortRecency, params)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Stats.Total != 1 {
		t.Fatalf("Expected 1 problem initially, got %d", result.Stats.Total)
	}

	// Second listing is served from cache
	if _, err := service.ListProblems(context.Background(), FilterState{}, SortRecency, params); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if listCalls != 1 {
		t.Errorf("Expected 1 repository load before create, got %d", listCalls)
	}

	req := CreateProblemRequest{Title: "Second", Description: "d", Location: "l", DangerLevel: "medium"}
	if _, err := service.ReportProblem(context.Background(), req, "reporter-1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Listing after create reloads and sees the new report
	result, err = service.ListProblems(context.Background(), FilterState{}, SortRecency, params)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if listCalls != 2 {
		t.Errorf("Expected reload after create, got %d loads", listCalls)
	}
	if result.Stats.Total != 2 {
		t.Errorf("Expected 2 problems after create, got %d", result.Stats.Total)
	}
}

// TestListProblems_FilterAndPaginate tests the assembled listing view
func TestListProblems_FilterAndPaginate(t *testing.T) {
	problems := sampleProblems()
	mockRepo := &mockRepository{
		listProblemsFunc: func(ctx context.Context) ([]Problem, error) {
			return problems, nil
		},
	}

	service := NewService(mockRepo)

	f := FilterState{DangerLevel: "high"}
	params := pagination.Params{Page: 1, Limit: 1}

	result, err := service.ListProblems(context.Background(), f, SortRecency, params)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Problems) != 1 {
		t.Errorf("Expected 1 problem on page, got %d", len(result.Problems))
	}
	if result.FilteredTotal != 2 {
		t.Errorf("Expected filtered total 2, got %d", result.FilteredTotal)
	}
	// Stats always cover the whole collection, not the filtered view
	if result.Stats.Total != 4 {
		t.Errorf("Expected stats total 4, got %d", result.Stats.Total)
	}
	if result.ActiveFilters != 1 {
		t.Errorf("Expected 1 active filter, got %d", result.ActiveFilters)
	}
	if result.Pagination.TotalRecords != 2 {
		t.Errorf("Expected pagination over filtered total 2, got %d", result.Pagination.TotalRecords)
	}
}

// TestListProblems_StaleOnFailure tests that a repository failure after a
// successful load serves the stale snapshot instead of an error
func TestListProblems_StaleOnFailure(t *testing.T) {
	failing := false
	mockRepo := &mockRepository{
		listProblemsFunc: func(ctx context.Context) ([]Problem, error) {
			if failing {
				return nil, errors.New("connection refused")
			}
			return sampleProblems(), nil
		},
		createProblemFunc: func(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
			return &Problem{ID: "p-new"}, nil
		},
	}

	service := NewService(mockRepo)
	params := pagination.Params{Page: 1, Limit: 10}

	if _, err := service.ListProblems(context.Background(), FilterState{}, SortRecency, params); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Invalidate so the next read attempts a reload, then fail the source
	req := CreateProblemRequest{Title: "t", Description: "d", Location: "l", DangerLevel: "low"}
	if _, err := service.ReportProblem(context.Background(), req, "reporter-1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	failing = true

	result, err := service.ListProblems(context.Background(), FilterState{}, SortRecency, params)
	if err != nil {
		t.Fatalf("Expected stale snapshot instead of error, got: %v", err)
	}
	if result.Stats.Total != 4 {
		t.Errorf("Expected last known good snapshot of 4 problems, got %d", result.Stats.Total)
	}
}

// TestListMarkers_RespectsFilters tests that markers honor the same filters
func TestListMarkers_RespectsFilters(t *testing.T) {
	mockRepo := &mockRepository{
		listProblemsFunc: func(ctx context.Context) ([]Problem, error) {
			return sampleProblems(), nil
		},
	}

	service := NewService(mockRepo)

	markers, err := service.ListMarkers(context.Background(), FilterState{Status: "resolved"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// p-3 is resolved but carries no coordinates
	if len(markers) != 0 {
		t.Errorf("Expected 0 markers, got %d", len(markers))
	}

	markers, err = service.ListMarkers(context.Background(), FilterState{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(markers) != 1 {
		t.Errorf("Expected 1 marker, got %d", len(markers))
	}
}

// TestGetProblem_NotFound tests lookup error passthrough
func TestGetProblem_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		getProblemFunc: func(ctx context.Context, id string) (*Problem, error) {
			return nil, ErrNotFound
		},
	}

	service := NewService(mockRepo)

	p, err := service.GetProblem(context.Background(), "missing")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil problem")
	}
}

// Mock implementations

type mockRepository struct {
	createProblemFunc func(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error)
	listProblemsFunc  func(ctx context.Context) ([]Problem, error)
	getProblemFunc    func(ctx context.Context, id string) (*Problem, error)
}

func (m *mockRepository) CreateProblem(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
	if m.createProblemFunc != nil {
		return m.createProblemFunc(ctx, req, reporterID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListProblems(ctx context.Context) ([]Problem, error) {
	if m.listProblemsFunc != nil {
		return m.listProblemsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetProblem(ctx context.Context, id string) (*Problem, error) {
	if m.getProblemFunc != nil {
		return m.getProblemFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}
