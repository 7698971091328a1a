package organization

import "context"

// RepositoryInterface defines the contract for organization data access
type RepositoryInterface interface {
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest, ownerID string) (*Organization, error)
	ListVerifiedOrganizations(ctx context.Context) ([]Organization, error)
	GetOrganization(ctx context.Context, id string) (*Organization, error)
	CreateService(ctx context.Context, orgID string, req CreateServiceRequest, requesterID string) (*OrganizationService, error)
	ListServices(ctx context.Context, orgID string) ([]OrganizationService, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
