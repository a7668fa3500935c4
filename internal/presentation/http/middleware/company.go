package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/repository"
	infraRepo "github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/internal/presentation/http/dto/response"
)

// CompanyMiddleware resolves the active company from the X-Company-ID
// header and verifies the authenticated user's membership. A company the
// user does not belong to is reported as not found, never as forbidden.
func CompanyMiddleware(companyRepo repository.CompanyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Company-ID")
		if header == "" {
			response.BadRequest(c, "X-Company-ID header is required")
			c.Abort()
			return
		}

		companyID, err := uuid.Parse(header)
		if err != nil {
			response.BadRequest(c, "Invalid company ID")
			c.Abort()
			return
		}

		userID := GetUserID(c)
		if userID == uuid.Nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		isMember, err := companyRepo.IsMember(c.Request.Context(), companyID, userID)
		if err != nil {
			response.InternalServerError(c, "Failed to resolve company")
			c.Abort()
			return
		}
		if !isMember {
			response.NotFound(c, "Company not found")
			c.Abort()
			return
		}

		// Set company ID in Gin context (for middleware/handlers)
		c.Set("company_id", companyID)

		// Also set company ID in request context (for services/repositories)
		ctx := infraRepo.WithCompany(c.Request.Context(), companyID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCompanyID retrieves the active company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
