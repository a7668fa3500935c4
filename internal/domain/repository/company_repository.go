package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/pkg/pagination"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	// Create creates a new company
	Create(ctx context.Context, company *entity.Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)

	// Update updates an existing company
	Update(ctx context.Context, company *entity.Company) error

	// Delete soft-deletes a company
	Delete(ctx context.Context, id uuid.UUID) error

	// GetUserCompanies retrieves all companies a user belongs to with pagination
	GetUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Company, int64, error)

	// AddMember adds a user as a member of a company
	AddMember(ctx context.Context, membership *entity.CompanyMembership) error

	// RemoveMember removes a user from a company
	RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error

	// GetMembers retrieves all members of a company
	GetMembers(ctx context.Context, companyID uuid.UUID) ([]entity.CompanyMembership, error)

	// IsMember checks if a user is a member of a company
	IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error)

	// GetMembership retrieves a specific membership
	GetMembership(ctx context.Context, companyID, userID uuid.UUID) (*entity.CompanyMembership, error)

	// UpdateMemberRole updates a member's role in a company
	UpdateMemberRole(ctx context.Context, companyID, userID uuid.UUID, role string) error
}
