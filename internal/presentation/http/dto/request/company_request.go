package request

import "github.com/kiplagat/billify-api/internal/domain/entity"

// UpdateCompanyRequest represents a company update request
type UpdateCompanyRequest struct {
	Name     *string                 `json:"name" binding:"omitempty,min=1,max=255"`
	Settings *entity.CompanySettings `json:"settings"`
}

// AddMemberRequest represents a request to add a member to a company
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin member"`
}

// UpdateMemberRoleRequest represents a member role change request
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}
