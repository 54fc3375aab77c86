package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/app/services"
	"github.com/schoolhub/schoolhub/internal/middleware"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
)

// AuthController handles registration and session endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// ShowRegister describes the registration form: the fields a submission
// must carry and the selectable roles.
func (c *AuthController) ShowRegister(ctx *gin.Context) {
	form := dto.RegistrationForm{
		Fields: []string{"name", "email", "password", "password_confirmation", "role"},
		Roles: map[int64]string{
			models.RoleTeacherID: string(models.RoleTeacher),
			models.RoleStudentID: string(models.RoleStudent),
		},
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: form})
}

// Register creates an account and opens a session. On success the client
// is sent on to the dashboard.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, role, tokens, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSession(ctx, tokens)
	ctx.Header("Location", middleware.PathDashboard)
	ctx.JSON(http.StatusSeeOther, dto.APIResponse{Data: dto.RegisterResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(role),
		Token:  *tokens,
	}})
}

// Login verifies credentials and opens a session
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, role, tokens, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSession(ctx, tokens)
	ctx.Header("Location", middleware.PathDashboard)
	ctx.JSON(http.StatusSeeOther, dto.APIResponse{Data: dto.RegisterResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(role),
		Token:  *tokens,
	}})
}

// RefreshToken exchanges a refresh token for a fresh pair
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSession(ctx, tokens)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// Logout revokes the caller's refresh tokens and clears the session cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	ctx.Header("Location", "/")
	ctx.JSON(http.StatusSeeOther, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out"}})
}

// Dashboard is the generic authenticated landing. It resolves the caller
// and points at the role-specific index.
func (c *AuthController) Dashboard(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	user, role, err := c.authService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	roleIndex := middleware.PathStudentIndex
	if role == models.RoleTeacher {
		roleIndex = middleware.PathTeacherIndex
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.DashboardResponse{
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(role),
		},
		RoleIndex: roleIndex,
	}})
}

// setSession stores the access token in the session cookie
func (c *AuthController) setSession(ctx *gin.Context, tokens *dto.TokenResponse) {
	ctx.SetCookie(
		middleware.AuthCookieName,
		tokens.AccessToken,
		int(tokens.ExpiresIn),
		"/",
		"",
		false,
		true,
	)
}
