package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cinelog/internal/httpapi/dto"
	"cinelog/internal/httpapi/middleware"
	"cinelog/internal/httpapi/service"
	"cinelog/internal/httpapi/validation"
)

type AuthHandler struct {
	authService service.AuthService
	sessions    *SessionWriter
}

func NewAuthHandler(authService service.AuthService, sessions *SessionWriter) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterRoutes registers the account endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req validation.Credentials
	if err := bindJSON(c, &req); err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request")
		return
	}

	if fieldErrors := validation.ValidateCredentials(req); len(fieldErrors) > 0 {
		sendError(c, http.StatusUnprocessableEntity, "Unprocessable Entity", fieldErrors...)
		return
	}

	user, err := h.authService.Register(req.Username.Value(), req.Password.Value())
	if errors.Is(err, service.ErrUsernameTaken) {
		sendError(c, http.StatusConflict, "Conflict",
			validation.FieldError{Field: "username", Code: "DUPLICATE", Message: "That username is already taken"})
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := h.sessions.Attach(c, user.Username); err != nil {
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{OK: true, Username: user.Username})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.Credentials
	if err := bindJSON(c, &req); err != nil {
		sendError(c, http.StatusBadRequest, "Bad Request")
		return
	}

	if fieldErrors := validation.ValidateCredentials(req); len(fieldErrors) > 0 {
		sendError(c, http.StatusUnprocessableEntity, "Unprocessable Entity", fieldErrors...)
		return
	}

	user, err := h.authService.Login(req.Username.Value(), req.Password.Value())
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		sendError(c, http.StatusNotFound, "Not Found",
			validation.FieldError{Field: "username", Code: "NOT_FOUND", Message: "No user with that username"})
		return
	case errors.Is(err, service.ErrInvalidPassword):
		sendError(c, http.StatusUnauthorized, "Unauthorized",
			validation.FieldError{Field: "password", Code: "INVALID_PASSWORD", Message: "Wrong password"})
		return
	case err != nil:
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := h.sessions.Attach(c, user.Username); err != nil {
		sendError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{OK: true, Username: user.Username})
}

// Logout destroys the session unconditionally; it never fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.JSON(http.StatusOK, dto.AckResponse{OK: true})
}

// Me reports the identity attached to the session; {} for anonymous callers.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MeResponse{Username: c.GetString(middleware.UsernameKey)})
}
