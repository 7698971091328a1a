package problem

import (
	"context"

	"github.com/ecolink-tn/ecolink-api/internal/pagination"
)

// ServiceInterface defines the contract for problem business logic
type ServiceInterface interface {
	ReportProblem(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error)
	ListProblems(ctx context.Context, f FilterState, key SortKey, params pagination.Params) (*ListResult, error)
	ListMarkers(ctx context.Context, f FilterState) ([]Marker, error)
	GetProblem(ctx context.Context, id string) (*Problem, error)
	Refetch(ctx context.Context) []Problem
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
