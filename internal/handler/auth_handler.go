package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusboard/backend/internal/middleware"
	"focusboard/backend/internal/model"
	"focusboard/backend/internal/service"
	"focusboard/backend/internal/session"
)

type AuthHandler struct {
	authService *service.AuthService
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	session.SetCookie(c.Writer, result.Session.ID, result.Session.ExpiresAt)
	c.JSON(http.StatusCreated, toUserResponse(result.User))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	session.SetCookie(c.Writer, result.Session.ID, result.Session.ExpiresAt)
	c.JSON(http.StatusOK, toUserResponse(result.User))
}

// Logout always clears the cookie, whether or not a server-side session
// was found.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), session.Token(c.Request))
	session.ClearCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user model.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email}
}
