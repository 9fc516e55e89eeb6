package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/app/models/dto"
	"github.com/EgorTarasov/ldt-2023/internal/app/services"
	"github.com/EgorTarasov/ldt-2023/internal/middleware"
)

// AuthController handles registration, login and logout
type AuthController struct {
	authService   *services.AuthService
	accessMaxAge  int
	refreshMaxAge int
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, accessMaxAge, refreshMaxAge int) *AuthController {
	return &AuthController{
		authService:   authService,
		accessMaxAge:  accessMaxAge,
		refreshMaxAge: refreshMaxAge,
	}
}

// Register handles account creation
// @Summary Register a new user
// @Description Creates an account and signs the user in. The curator role cannot be self-assigned.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.APIResponse{data=dto.TokenResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid registration data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, tokens, err := c.authService.Register(ctx, req, ctx.ClientIP())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, tokens.AccessToken)

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: gin.H{
			"user":   dto.FromUser(user),
			"tokens": tokens,
		},
		Timestamp: time.Now(),
	})
}

// Login handles credential sign-in
// @Summary Log in
// @Description Verifies credentials and sets the access token cookie. With stayLoggedIn a refresh token cookie is set as well.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Signed in"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(dto.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, tokens, err := c.authService.Login(ctx, req, ctx.ClientIP())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, tokens.AccessToken)
	if req.StayLoggedIn {
		ctx.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken, c.refreshMaxAge, "/", "", false, true)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"user":   dto.FromUser(user),
			"tokens": tokens,
		},
		Timestamp: time.Now(),
	})
}

// Logout clears the access token cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Signed out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	ctx.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "signed out"},
		Timestamp: time.Now(),
	})
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromUser(user),
		Timestamp: time.Now(),
	})
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(middleware.AccessTokenCookie, token, c.accessMaxAge, "/", "", false, true)
}
