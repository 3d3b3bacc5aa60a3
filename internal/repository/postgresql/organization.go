package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/database"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepository) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	org.ID = uuid.New().String()

	query := `
		INSERT INTO organizations (id, name, email, password_hash, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		org.ID, org.Name, org.Email, org.PasswordHash, org.Phone, org.Address,
	).Scan(&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return organization.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, phone, address, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Email, &org.PasswordHash,
		&org.Phone, &org.Address, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// GetByEmail implements organization.OrganizationRepository.
func (r *organizationRepository) GetByEmail(ctx context.Context, email string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, phone, address, created_at, updated_at
		FROM organizations
		WHERE email = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, email).Scan(
		&org.ID, &org.Name, &org.Email, &org.PasswordHash,
		&org.Phone, &org.Address, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization by email: %w", err)
	}

	return org, nil
}

// ListIDs implements organization.OrganizationRepository.
func (r *organizationRepository) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan organization id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Update implements organization.OrganizationRepository.
func (r *organizationRepository) Update(ctx context.Context, org organization.Organization) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET name = $2, email = $3, password_hash = $4, phone = $5, address = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		org.ID, org.Name, org.Email, org.PasswordHash, org.Phone, org.Address,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}

	return nil
}

// Delete implements organization.OrganizationRepository.
func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}

	return nil
}
