package shift

import "context"

// ShiftRepository defines data access for shift definitions. The attendance
// engine only reads shifts; writes happen through the administrative CRUD.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	GetByID(ctx context.Context, id string, organizationID string) (Shift, error)

	// ListByCategory returns every shift configured for an employee
	// category, ordered by start time ascending. An empty slice means no
	// shift information is available; callers must degrade gracefully.
	ListByCategory(ctx context.Context, organizationID string, category string) ([]Shift, error)

	// ListCategories returns the distinct categories that have at least one
	// shift configured. Used by the absence marker.
	ListCategories(ctx context.Context, organizationID string) ([]string, error)

	List(ctx context.Context, organizationID string) ([]Shift, error)

	Update(ctx context.Context, shift Shift) error

	Delete(ctx context.Context, id string, organizationID string) error
}
