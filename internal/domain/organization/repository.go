package organization

import "context"

type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
	GetByEmail(ctx context.Context, email string) (Organization, error)

	// ListIDs returns every organization id. Input for the background jobs
	// that walk all tenants.
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, org Organization) error
	Delete(ctx context.Context, id string) error
}
