package handlers

import (
	"net/http"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	// Self registration always creates a customer account.
	user, token, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, "Account created successfully.", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, "Logged in successfully.", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	respondOK(c, "Authenticated user.", CurrentUser(c))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Logged out successfully.", nil)
}
