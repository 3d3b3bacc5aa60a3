package organization

import "time"

// Organization is the tenant owning employees and shifts. Its admin account
// is the credential used for the administrative API.
type Organization struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
