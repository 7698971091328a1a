package organization

import "time"

// OrgType classifies the legal form of an organization.
type OrgType string

const (
	TypeEntreprise     OrgType = "entreprise"
	TypeAssociation    OrgType = "association"
	TypeONG            OrgType = "ong"
	TypeGouvernemental OrgType = "gouvernemental"
	TypeUnknown        OrgType = "unknown"
)

// ParseOrgType maps raw store text to a closed variant, degrading to
// TypeUnknown instead of failing.
func ParseOrgType(s string) OrgType {
	switch OrgType(s) {
	case TypeEntreprise, TypeAssociation, TypeONG, TypeGouvernemental:
		return OrgType(s)
	}
	return TypeUnknown
}

// Known reports whether the type is one of the enumerated values.
func (t OrgType) Known() bool {
	return t != TypeUnknown && t != ""
}

// Category is the RSE domain an organization operates in.
type Category string

const (
	CategoryEnvironnement Category = "environnement"
	CategorySocial        Category = "social"
	CategoryEconomique    Category = "economique"
	CategoryGouvernance   Category = "gouvernance"
	CategoryUnknown       Category = "unknown"
)

// ParseCategory maps raw store text to a closed variant.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryEnvironnement, CategorySocial, CategoryEconomique, CategoryGouvernance:
		return Category(s)
	}
	return CategoryUnknown
}

// Known reports whether the category is one of the enumerated values.
func (c Category) Known() bool {
	return c != CategoryUnknown && c != ""
}

// Availability is the current capacity state shown in the directory.
type Availability string

const (
	AvailabilityDisponible Availability = "disponible"
	AvailabilityOccupe     Availability = "occupé"
	AvailabilityEnPause    Availability = "en_pause"
	AvailabilityUnknown    Availability = "unknown"
)

// ParseAvailability maps raw store text to a closed variant.
func ParseAvailability(s string) Availability {
	switch Availability(s) {
	case AvailabilityDisponible, AvailabilityOccupe, AvailabilityEnPause:
		return Availability(s)
	}
	return AvailabilityUnknown
}

// Known reports whether the availability is one of the enumerated values.
func (a Availability) Known() bool {
	return a != AvailabilityUnknown && a != ""
}

// ImpactLevel grades the expected impact of a service.
type ImpactLevel string

const (
	ImpactFaible ImpactLevel = "faible"
	ImpactMoyen  ImpactLevel = "moyen"
	ImpactFort   ImpactLevel = "fort"
)

// OrganizationService is a service offered by an organization. Price stays
// an opaque display string ("1500 TND", "Gratuit"); it is never compared
// numerically.
type OrganizationService struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organization_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Price          string      `json:"price"`
	Duration       string      `json:"duration,omitempty"`
	Category       string      `json:"category"`
	ImpactLevel    ImpactLevel `json:"impact_level,omitempty"`
}

// Organization represents a directory entry. Only verified organizations
// are served publicly.
type Organization struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Type               OrgType               `json:"type"`
	Category           Category              `json:"category"`
	Description        string                `json:"description,omitempty"`
	City               string                `json:"city"`
	Region             string                `json:"region"`
	Address            string                `json:"address,omitempty"`
	Phone              string                `json:"phone,omitempty"`
	Email              string                `json:"email,omitempty"`
	Website            string                `json:"website,omitempty"`
	LogoURL            string                `json:"logo_url,omitempty"`
	Rating             float64               `json:"rating"`
	RSEScore           int                   `json:"rse_score"`
	Certifications     []string              `json:"certifications,omitempty"`
	Specialties        []string              `json:"specialties,omitempty"`
	AvailabilityStatus Availability          `json:"availability_status"`
	YearsActive        int                   `json:"years_active"`
	TeamSize           int                   `json:"team_size"`
	ProjectsCompleted  int                   `json:"projects_completed"`
	ClientsSatisfied   int                   `json:"clients_satisfied"`
	Verified           bool                  `json:"verified"`
	OwnerID            string                `json:"-"`
	CreatedAt          time.Time             `json:"created_at"`
	Services           []OrganizationService `json:"services,omitempty"`
}

// CreateOrganizationRequest represents the request to register a new
// organization. Registrations always start unverified with zeroed scores;
// verification is toggled externally.
type CreateOrganizationRequest struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	City           string   `json:"city"`
	Region         string   `json:"region"`
	Address        string   `json:"address,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Email          string   `json:"email,omitempty"`
	Website        string   `json:"website,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	YearsActive    int      `json:"years_active,omitempty"`
	TeamSize       int      `json:"team_size,omitempty"`
}

// CreateServiceRequest represents the request to add a service to an
// organization's catalog.
type CreateServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Duration    string `json:"duration,omitempty"`
	Category    string `json:"category"`
	ImpactLevel string `json:"impact_level,omitempty"`
}
