package organization

import (
	"context"
	"strings"

	"github.com/ecolink-tn/ecolink-api/internal/cache"
	"github.com/ecolink-tn/ecolink-api/internal/pagination"
)

// DirectoryResult is one page of the filtered directory plus the header
// aggregates, which always cover the whole verified collection.
type DirectoryResult struct {
	Organizations []Organization  `json:"organizations"`
	Stats         Stats           `json:"stats"`
	FilteredTotal int             `json:"filtered_total"`
	ActiveFilters int             `json:"active_filters"`
	Pagination    pagination.Meta `json:"pagination"`
}

type Service struct {
	repo  RepositoryInterface
	cache *cache.Collection[Organization]
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New("organizations", repo.ListVerifiedOrganizations),
	}
}

// RegisterOrganization validates and stores a registration. New entries are
// unverified and will not show up in the directory until verification, but
// the cache is still invalidated so a verification flip is picked up on the
// next reload.
func (s *Service) RegisterOrganization(ctx context.Context, req CreateOrganizationRequest, ownerID string) (*Organization, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.City == "" {
		return nil, ErrMissingCity
	}
	if !ParseOrgType(req.Type).Known() {
		return nil, ErrInvalidType
	}
	if !ParseCategory(req.Category).Known() {
		return nil, ErrInvalidCategory
	}
	if req.Email != "" && !validEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	org, err := s.repo.CreateOrganization(ctx, req, ownerID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return org, nil
}

// Directory serves the filtered, sorted, paginated public directory from
// the cache. A stale snapshot is acceptable; readers never see a fetch
// error, only the last known good collection.
func (s *Service) Directory(ctx context.Context, f FilterState, key SortKey, params pagination.Params) (*DirectoryResult, error) {
	params.Validate()

	all := s.cache.Get(ctx)
	filtered := ApplyFilter(all, f, key)

	start, end := params.Bounds(len(filtered))

	return &DirectoryResult{
		Organizations: filtered[start:end],
		Stats:         ComputeStats(all),
		FilteredTotal: len(filtered),
		ActiveFilters: f.ActiveCount(),
		Pagination:    params.CalculateMeta(len(filtered)),
	}, nil
}

func (s *Service) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	return s.repo.GetOrganization(ctx, id)
}

// AddService validates and stores a catalog entry, then invalidates the
// directory cache so service counts stay consistent.
func (s *Service) AddService(ctx context.Context, orgID string, req CreateServiceRequest, requesterID string) (*OrganizationService, error) {
	if req.Name == "" {
		return nil, ErrMissingServiceName
	}

	svc, err := s.repo.CreateService(ctx, orgID, req, requesterID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, orgID string) ([]OrganizationService, error) {
	return s.repo.ListServices(ctx, orgID)
}

// Refetch forces a cache reload, the explicit read-after-write path.
func (s *Service) Refetch(ctx context.Context) []Organization {
	return s.cache.Refresh(ctx)
}

// validEmail is a pre-network sanity check, not an RFC parser: one @ with
// a dot somewhere after it.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
