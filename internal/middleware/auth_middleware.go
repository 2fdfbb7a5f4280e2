package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/pkg/auth"
	"github.com/yigit/phdportal/internal/pkg/logger"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextUserID       = "userID"
	ContextUserEmail    = "userEmail"
	ContextUserRole     = "userRole"
	ContextDepartmentID = "departmentID"
)

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		if claims.DepartmentID != nil {
			c.Set(ContextDepartmentID, *claims.DepartmentID)
		}

		c.Next()
	}
}

// RoleRequired allows only callers carrying one of the given roles. Must run
// after JWTAuth.
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextUserRole)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		for _, allowed := range roles {
			if models.UserRole(role) == allowed {
				c.Next()
				return
			}
		}

		logger.Warn().
			Str("role", role).
			Str("path", c.FullPath()).
			Msg("Role denied access")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have permission to access this resource"),
		))
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(code, message),
	))
}
