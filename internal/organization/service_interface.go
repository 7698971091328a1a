package organization

import (
	"context"

	"github.com/ecolink-tn/ecolink-api/internal/pagination"
)

// ServiceInterface defines the contract for directory business logic
type ServiceInterface interface {
	RegisterOrganization(ctx context.Context, req CreateOrganizationRequest, ownerID string) (*Organization, error)
	Directory(ctx context.Context, f FilterState, key SortKey, params pagination.Params) (*DirectoryResult, error)
	GetOrganization(ctx context.Context, id string) (*Organization, error)
	AddService(ctx context.Context, orgID string, req CreateServiceRequest, requesterID string) (*OrganizationService, error)
	ListServices(ctx context.Context, orgID string) ([]OrganizationService, error)
	Refetch(ctx context.Context) []Organization
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
