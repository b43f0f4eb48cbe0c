package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"racephoto-marketplace/internal/domain"
)

type ctxKey string

const userCtxKey ctxKey = "authUser"

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// authMiddleware resolves the bearer token to a user and stores it on the
// request context.
func authMiddleware(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userCtxKey, user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// superAdminMiddleware must run after authMiddleware.
func superAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.IsSuperAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "super admin only"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(userCtxKey).(*domain.User)
	return user, ok
}

func meHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
