package problem

import (
	"context"

	"github.com/ecolink-tn/ecolink-api/internal/cache"
	"github.com/ecolink-tn/ecolink-api/internal/pagination"
)

// ListResult is the assembled problems listing: one page of the filtered
// view plus aggregates over the whole collection, mirroring the dashboard
// header which always counts everything regardless of active filters.
type ListResult struct {
	Problems      []Problem       `json:"problems"`
	Stats         Stats           `json:"stats"`
	FilteredTotal int             `json:"filtered_total"`
	ActiveFilters int             `json:"active_filters"`
	Pagination    pagination.Meta `json:"pagination"`
}

type Service struct {
	repo  RepositoryInterface
	cache *cache.Collection[Problem]
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New("problems", repo.ListProblems),
	}
}

// ReportProblem validates and stores a new report. The shared cache is
// invalidated but not refreshed; listings reload lazily on the next read.
func (s *Service) ReportProblem(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error) {
	if req.Title == "" {
		return nil, ErrMissingTitle
	}
	if req.Description == "" {
		return nil, ErrMissingDescription
	}
	if req.Location == "" {
		return nil, ErrMissingLocation
	}
	if !ParseDangerLevel(req.DangerLevel).Known() {
		return nil, ErrInvalidDangerLevel
	}

	p, err := s.repo.CreateProblem(ctx, req, reporterID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return p, nil
}

// ListProblems serves the filtered, sorted, paginated view from the cache.
// A stale snapshot is acceptable; a fetch failure never reaches the caller.
func (s *Service) ListProblems(ctx context.Context, f FilterState, key SortKey, params pagination.Params) (*ListResult, error) {
	params.Validate()

	all := s.cache.Get(ctx)
	filtered := ApplyFilter(all, f, key)

	start, end := params.Bounds(len(filtered))

	return &ListResult{
		Problems:      filtered[start:end],
		Stats:         ComputeStats(all),
		FilteredTotal: len(filtered),
		ActiveFilters: f.ActiveCount(),
		Pagination:    params.CalculateMeta(len(filtered)),
	}, nil
}

// ListMarkers serves coordinate-bearing problems for the map layer,
// respecting the same filters as the list view.
func (s *Service) ListMarkers(ctx context.Context, f FilterState) ([]Marker, error) {
	all := s.cache.Get(ctx)
	return Markers(ApplyFilter(all, f, SortRecency)), nil
}

func (s *Service) GetProblem(ctx context.Context, id string) (*Problem, error) {
	return s.repo.GetProblem(ctx, id)
}

// Refetch forces a cache reload, the explicit read-after-write path for
// callers that just created a report.
func (s *Service) Refetch(ctx context.Context) []Problem {
	return s.cache.Refresh(ctx)
}
