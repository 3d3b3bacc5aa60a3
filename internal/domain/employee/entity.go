package employee

import "time"

// Employee belongs to an organization and to an employee category, which
// links it to the shifts configured for that category. The face embedding
// itself lives with the external recognition capability; this record only
// carries the identity it resolves to.
type Employee struct {
	ID             string
	OrganizationID string
	EmployeeCode   string
	FullName       string
	Email          *string
	Phone          *string
	Category       string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
