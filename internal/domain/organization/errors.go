package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrEmailExists          = errors.New("organization email already registered")
)
