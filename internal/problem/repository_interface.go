package problem

import "context"

// RepositoryInterface defines the contract for problem data access
type RepositoryInterface interface {
	CreateProblem(ctx context.Context, req CreateProblemRequest, reporterID string) (*Problem, error)
	ListProblems(ctx context.Context) ([]Problem, error)
	GetProblem(ctx context.Context, id string) (*Problem, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
