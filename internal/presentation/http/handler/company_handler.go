package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/application/service"
	"github.com/kiplagat/billify-api/internal/presentation/http/dto/request"
	"github.com/kiplagat/billify-api/internal/presentation/http/dto/response"
	"github.com/kiplagat/billify-api/internal/presentation/http/middleware"
	"github.com/kiplagat/billify-api/pkg/pagination"
)

// CompanyHandler handles company and membership HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies handles listing the companies the user belongs to
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.companyService.ListUserCompanies(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}

// GetCurrent handles getting the active company
func (h *CompanyHandler) GetCurrent(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	companyID := middleware.GetCompanyID(c)

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// UpdateCurrent handles updating the active company
func (h *CompanyHandler) UpdateCurrent(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	companyID := middleware.GetCompanyID(c)

	var req request.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, *userID, &service.UpdateCompanyInput{
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", company)
}

// ListMembers handles listing the members of the active company
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	companyID := middleware.GetCompanyID(c)

	members, err := h.companyService.GetMembers(c.Request.Context(), companyID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", members)
}

// AddMember handles adding a member to the active company
func (h *CompanyHandler) AddMember(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	companyID := middleware.GetCompanyID(c)

	var req request.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.companyService.AddMember(c.Request.Context(), companyID, *userID, req.Email, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", membership)
}

// UpdateMemberRole handles changing a member's role
func (h *CompanyHandler) UpdateMemberRole(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	companyID := middleware.GetCompanyID(c)

	memberID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.companyService.UpdateMemberRole(c.Request.Context(), companyID, *userID, memberID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// RemoveMember handles removing a member from the active company
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}
	companyID := middleware.GetCompanyID(c)

	memberID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.companyService.RemoveMember(c.Request.Context(), companyID, *userID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
