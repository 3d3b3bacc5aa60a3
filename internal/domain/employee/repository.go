package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, organizationID string) ([]Employee, error)

	// ListActiveByCategory returns the active employees in a category,
	// across the organization owning that category's shifts. Absence-marker
	// input.
	ListActiveByCategory(ctx context.Context, organizationID string, category string) ([]Employee, error)

	Update(ctx context.Context, emp Employee) error

	// Delete removes the employee; attendance and presence rows cascade.
	Delete(ctx context.Context, id string) error
}
