package organization

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/ecolink-tn/ecolink-api/internal/messaging"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

func NewRepository(db *sql.DB, publisher messaging.PublisherInterface) *Repository {
	return &Repository{
		db:        db,
		publisher: publisher,
	}
}

const organizationColumns = `
	id, name, type, category, description, city, region, address, phone, email,
	website, logo_url, rating, rse_score, certifications, specialties,
	availability_status, years_active, team_size, projects_completed,
	clients_satisfied, verified, owner_id, created_at
`

// CreateOrganization registers a new directory entry. Registrations always
// start unverified with zeroed rating and rse_score; verification happens
// externally and only then does the entry become publicly listable.
func (r *Repository) CreateOrganization(ctx context.Context, req CreateOrganizationRequest, ownerID string) (*Organization, error) {
	id := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO ecolink.organizations
		(id, name, type, category, description, city, region, address, phone, email,
		 website, rating, rse_score, certifications, specialties, availability_status,
		 years_active, team_size, projects_completed, clients_satisfied, verified, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, 0, 0, $12, $13, $14,
		        $15, $16, 0, 0, FALSE, $17, $18)
		RETURNING ` + organizationColumns

	row := r.db.QueryRowContext(ctx, query,
		id,
		req.Name,
		req.Type,
		req.Category,
		req.Description,
		req.City,
		req.Region,
		req.Address,
		req.Phone,
		req.Email,
		req.Website,
		pq.Array(req.Certifications),
		pq.Array(req.Specialties),
		string(AvailabilityDisponible),
		req.YearsActive,
		req.TeamSize,
		ownerID,
		now,
	)

	org, err := scanOrganization(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return nil, fmt.Errorf("organization with this name already exists")
			}
		}
		return nil, fmt.Errorf("failed to insert organization: %w", err)
	}

	event := messaging.OrganizationRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventOrganizationRegistered),
		Data: messaging.OrganizationRegisteredData{
			OrganizationID: org.ID,
			Name:           org.Name,
			Type:           string(org.Type),
			Category:       string(org.Category),
			City:           org.City,
			Verified:       org.Verified,
			CreatedAt:      org.CreatedAt,
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventOrganizationRegistered, event); err != nil {
		log.Printf("[ERROR] Failed to publish %s event for organization %s: %v", messaging.EventOrganizationRegistered, org.ID, err)
	}

	return org, nil
}

// ListVerifiedOrganizations returns the public directory: verified entries
// only, rating descending, each with its service catalog attached.
func (r *Repository) ListVerifiedOrganizations(ctx context.Context) ([]Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM ecolink.organizations
		WHERE verified = TRUE
		ORDER BY rating DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	var orgs []Organization
	var ids []string
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, *org)
		ids = append(ids, org.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}

	if len(orgs) == 0 {
		return orgs, nil
	}

	servicesByOrg, err := r.servicesForOrganizations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orgs {
		orgs[i].Services = servicesByOrg[orgs[i].ID]
	}

	return orgs, nil
}

func (r *Repository) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM ecolink.organizations
		WHERE id = $1
	`

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	services, err := r.ListServices(ctx, id)
	if err != nil {
		return nil, err
	}
	org.Services = services

	return org, nil
}

// CreateService adds a service to an organization's catalog. Only the
// account that registered the organization may add services to it.
func (r *Repository) CreateService(ctx context.Context, orgID string, req CreateServiceRequest, requesterID string) (*OrganizationService, error) {
	var ownerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM ecolink.organizations WHERE id = $1`, orgID,
	).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}
	if ownerID != requesterID {
		return nil, ErrForbidden
	}

	id := uuid.New().String()
	query := `
		INSERT INTO ecolink.organization_services
		(id, organization_id, name, description, price, duration, category, impact_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, organization_id, name, description, price, duration, category, impact_level
	`

	svc, err := scanService(r.db.QueryRowContext(ctx, query,
		id,
		orgID,
		req.Name,
		req.Description,
		req.Price,
		req.Duration,
		req.Category,
		nullableString(req.ImpactLevel),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert service: %w", err)
	}

	event := messaging.OrganizationServiceAddedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventOrganizationServiceAdded),
		Data: messaging.OrganizationServiceAddedData{
			ServiceID:      svc.ID,
			OrganizationID: svc.OrganizationID,
			Name:           svc.Name,
			Category:       svc.Category,
			AddedAt:        time.Now().UTC(),
		},
	}
	if err := r.publisher.Publish(ctx, messaging.EventOrganizationServiceAdded, event); err != nil {
		log.Printf("[ERROR] Failed to publish %s event for service %s: %v", messaging.EventOrganizationServiceAdded, svc.ID, err)
	}

	return svc, nil
}

func (r *Repository) ListServices(ctx context.Context, orgID string) ([]OrganizationService, error) {
	query := `
		SELECT id, organization_id, name, description, price, duration, category, impact_level
		FROM ecolink.organization_services
		WHERE organization_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []OrganizationService
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

// servicesForOrganizations loads the catalogs for a batch of organizations
// in one query instead of one round trip per entry.
func (r *Repository) servicesForOrganizations(ctx context.Context, orgIDs []string) (map[string][]OrganizationService, error) {
	query := `
		SELECT id, organization_id, name, description, price, duration, category, impact_level
		FROM ecolink.organization_services
		WHERE organization_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(orgIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	byOrg := make(map[string][]OrganizationService)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		byOrg[svc.OrganizationID] = append(byOrg[svc.OrganizationID], *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return byOrg, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrganization(row rowScanner) (*Organization, error) {
	var org Organization
	var orgType, category, availability string
	var description, address, phone, email, website, logoURL sql.NullString

	err := row.Scan(
		&org.ID,
		&org.Name,
		&orgType,
		&category,
		&description,
		&org.City,
		&org.Region,
		&address,
		&phone,
		&email,
		&website,
		&logoURL,
		&org.Rating,
		&org.RSEScore,
		pq.Array(&org.Certifications),
		pq.Array(&org.Specialties),
		&availability,
		&org.YearsActive,
		&org.TeamSize,
		&org.ProjectsCompleted,
		&org.ClientsSatisfied,
		&org.Verified,
		&org.OwnerID,
		&org.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	org.Description = description.String
	org.Address = address.String
	org.Phone = phone.String
	org.Email = email.String
	org.Website = website.String
	org.LogoURL = logoURL.String

	org.Type = ParseOrgType(orgType)
	org.Category = ParseCategory(category)
	org.AvailabilityStatus = ParseAvailability(availability)

	return &org, nil
}

func scanService(row rowScanner) (*OrganizationService, error) {
	var svc OrganizationService
	var description, duration, impactLevel sql.NullString

	err := row.Scan(
		&svc.ID,
		&svc.OrganizationID,
		&svc.Name,
		&description,
		&svc.Price,
		&duration,
		&svc.Category,
		&impactLevel,
	)
	if err != nil {
		return nil, err
	}

	svc.Description = description.String
	svc.Duration = duration.String
	svc.ImpactLevel = ImpactLevel(impactLevel.String)

	return &svc, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
