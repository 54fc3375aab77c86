package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/pkg/auth"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthCookieName is the session cookie carrying the access token
const AuthCookieName = "auth_token"

// Redirect targets used by the role gate
const (
	PathDashboard    = "/dashboard"
	PathTeacherIndex = "/teacher"
	PathStudentIndex = "/student"
)

// JWTAuth authenticates the request from the Authorization header or the
// session cookie and stores the caller's identity in the request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if header := c.GetHeader("Authorization"); header != "" {
			extracted, err := auth.ExtractBearerToken(header)
			if err == nil {
				tokenString = extracted
			}
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(AuthCookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			unauthorized(c, dto.ErrorCodeInvalidToken, "Authentication required")
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				unauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			logger.Debug().Err(err).Msg("Token validation failed")
			unauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		role := models.Role(claims.Role)
		if !role.Valid() {
			unauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, role)

		c.Next()
	}
}

// RequireRole gates a route group to one role. A mismatched caller is
// redirected rather than refused: non-teachers asking for teacher pages
// go back to the dashboard, while non-students asking for student pages
// go to the teacher index.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			unauthorized(c, dto.ErrorCodeInvalidToken, "Authentication required")
			return
		}

		if role == required {
			c.Next()
			return
		}

		target := PathDashboard
		if required == models.RoleStudent {
			target = PathTeacherIndex
		}

		logger.Debug().
			Str("role", string(role)).
			Str("required", string(required)).
			Str("path", c.Request.URL.Path).
			Msg("Role gate redirect")

		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// UserIDFromContext returns the authenticated user's id
func UserIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// RoleFromContext returns the authenticated user's role
func RoleFromContext(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}

func unauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	detail := dto.NewErrorDetail(code, message)
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	c.Abort()
}
