package handlers

import (
	"net/http"
	"strings"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/models"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	contextUserKey   = "currentUser"
	contextClaimsKey = "authClaims"
)

// AuthMiddleware validates the bearer token and loads the authenticated user
// into the request context. Requests without a valid token are rejected.
func AuthMiddleware(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		user, err := auth.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Account no longer exists.")
			c.Abort()
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid bearer token is present but lets
// anonymous requests through. Used on public routes that vary their response
// by role.
func OptionalAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		if user, err := auth.GetUser(c.Request.Context(), claims.UserID); err == nil {
			c.Set(contextClaimsKey, claims)
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated user has none of the given
// roles. It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			respondError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		respondError(c, http.StatusForbidden, "You are not allowed to perform this action.")
		c.Abort()
	}
}

// CurrentUser returns the authenticated user, or nil on unauthenticated
// routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentClaims returns the token claims set by AuthMiddleware.
func CurrentClaims(c *gin.Context) *services.Claims {
	v, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
