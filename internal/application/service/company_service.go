package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/repository"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/kiplagat/billify-api/pkg/pagination"
)

// CompanyService handles company and membership operations
type CompanyService struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// GetCompany retrieves a company the user belongs to
func (s *CompanyService) GetCompany(ctx context.Context, companyID, userID uuid.UUID) (*entity.Company, error) {
	isMember, err := s.companyRepo.IsMember(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperror.NewNotFoundError("Company")
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// ListUserCompanies lists the companies a user belongs to
func (s *CompanyService) ListUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.GetUserCompanies(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// UpdateCompanyInput represents the update company input
type UpdateCompanyInput struct {
	Name     *string
	Settings *entity.CompanySettings
}

// UpdateCompany updates a company. Only owners and admins may do this.
func (s *CompanyService) UpdateCompany(ctx context.Context, companyID, userID uuid.UUID, input *UpdateCompanyInput) (*entity.Company, error) {
	if _, err := s.requireRole(ctx, companyID, userID, entity.RoleOwner, entity.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if input.Name != nil && *input.Name != "" {
		company.Name = *input.Name
	}
	if input.Settings != nil {
		company.Settings = *input.Settings
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetMembers lists the members of a company
func (s *CompanyService) GetMembers(ctx context.Context, companyID, userID uuid.UUID) ([]entity.CompanyMembership, error) {
	isMember, err := s.companyRepo.IsMember(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperror.NewNotFoundError("Company")
	}

	members, err := s.companyRepo.GetMembers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	for i := range members {
		members[i].PopulateUserDetails()
	}
	return members, nil
}

// AddMember adds an existing user to a company by email
func (s *CompanyService) AddMember(ctx context.Context, companyID, actorID uuid.UUID, memberEmail, role string) (*entity.CompanyMembership, error) {
	if _, err := s.requireRole(ctx, companyID, actorID, entity.RoleOwner, entity.RoleAdmin); err != nil {
		return nil, err
	}

	if role != entity.RoleAdmin && role != entity.RoleMember {
		return nil, apperror.NewBadRequestError("Role must be admin or member")
	}

	user, err := s.userRepo.GetByEmail(ctx, memberEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	alreadyMember, err := s.companyRepo.IsMember(ctx, companyID, user.ID)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, apperror.NewConflictError("User is already a member")
	}

	membership := &entity.CompanyMembership{
		CompanyID: companyID,
		UserID:    user.ID,
		Role:      role,
	}
	if err := s.companyRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}

	membership.User = *user
	membership.PopulateUserDetails()
	return membership, nil
}

// RemoveMember removes a user from a company. Owners cannot be removed.
func (s *CompanyService) RemoveMember(ctx context.Context, companyID, actorID, memberID uuid.UUID) error {
	if _, err := s.requireRole(ctx, companyID, actorID, entity.RoleOwner, entity.RoleAdmin); err != nil {
		return err
	}

	membership, err := s.companyRepo.GetMembership(ctx, companyID, memberID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Member")
	}
	if membership.Role == entity.RoleOwner {
		return apperror.NewBadRequestError("Company owner cannot be removed")
	}

	return s.companyRepo.RemoveMember(ctx, companyID, memberID)
}

// UpdateMemberRole changes a member's role. Only owners may do this, and the
// owner role itself cannot be granted or revoked here.
func (s *CompanyService) UpdateMemberRole(ctx context.Context, companyID, actorID, memberID uuid.UUID, role string) error {
	if _, err := s.requireRole(ctx, companyID, actorID, entity.RoleOwner); err != nil {
		return err
	}

	if role != entity.RoleAdmin && role != entity.RoleMember {
		return apperror.NewBadRequestError("Role must be admin or member")
	}

	membership, err := s.companyRepo.GetMembership(ctx, companyID, memberID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Member")
	}
	if membership.Role == entity.RoleOwner {
		return apperror.NewBadRequestError("Company owner role cannot be changed")
	}

	return s.companyRepo.UpdateMemberRole(ctx, companyID, memberID, role)
}

func (s *CompanyService) requireRole(ctx context.Context, companyID, userID uuid.UUID, roles ...string) (*entity.CompanyMembership, error) {
	membership, err := s.companyRepo.GetMembership(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	for _, role := range roles {
		if membership.Role == role {
			return membership, nil
		}
	}
	return nil, apperror.ErrForbidden
}
