// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"playtube/internal/services"
	"playtube/internal/staging"
	"playtube/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	service *services.AuthService
	stager  *staging.DiskStager
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, stager *staging.DiskStager) *AuthHandler {
	return &AuthHandler{service: service, stager: stager}
}

// Register handles user registration. The body is multipart: four form
// fields plus an avatar file part (required) and a coverImage file part
// (optional). File parts are staged to local disk before the flow runs.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	res, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		AvatarPath:     h.stageFile(c, "avatar"),
		CoverImagePath: h.stageFile(c, "coverImage"),
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewCreatedResponse(httpdto.FromUserInfo(res), "User registered successfully"))
}

// Login handles user authentication and sets the token cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}

	setAuthCookie(c, accessTokenCookie, res.AccessToken)
	setAuthCookie(c, refreshTokenCookie, res.RefreshToken)

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.LoginData{
		User:         httpdto.FromUserInfo(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}, "User logged in successfully"))
}

// Logout invalidates the caller's refresh token and clears both cookies.
// The caller identity comes from the auth middleware.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		writeAuthError(c, err)
		return
	}

	clearAuthCookie(c, accessTokenCookie)
	clearAuthCookie(c, refreshTokenCookie)

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(struct{}{}, "User Logged Out"))
}

// stageFile writes the named file part to local staging and returns its
// path, or "" when the part is absent. Missing required parts surface
// as validation failures in the service.
func (h *AuthHandler) stageFile(c *gin.Context, field string) string {
	fh, err := c.FormFile(field)
	if err != nil {
		return ""
	}
	path, err := h.stager.Stage(fh)
	if err != nil {
		return ""
	}
	return path
}

func setAuthCookie(c *gin.Context, name, value string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, value, 0, "/", "", true, true)
}

func clearAuthCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
}

func writeAuthError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error()))
}
