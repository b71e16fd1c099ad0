package api

import (
	"errors"
	"net/http"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity headers. The client sends the authenticated user's identifier and
// role on every call; there is no token. The identifier therefore acts as an
// implicit bearer credential — a known trade-off of this contract, since the
// server keeps no session state to invalidate.
const (
	HeaderUserID   = "x-user-id"
	HeaderUserRole = "x-user-role"
)

// Context key for the resolved principal
const contextUserKey = "currentUser"

// IdentityMiddleware resolves the identity headers into a principal. Absent
// headers leave the request anonymous; present-but-invalid headers are
// rejected so a forged or stale identity never reaches a handler.
func IdentityMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDHeader := c.GetHeader(HeaderUserID)
		roleHeader := c.GetHeader(HeaderUserRole)

		if userIDHeader == "" {
			c.Next()
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDHeader)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid user identity header")
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortWithError(c, http.StatusUnauthorized, "Unknown user identity")
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve user identity")
			return
		}

		// The role header must agree with the stored record; the stored
		// record is authoritative either way.
		if roleHeader != "" && roleHeader != string(user.Role) {
			abortWithError(c, http.StatusUnauthorized, "Role header does not match account")
			return
		}
		if user.Status != domain.StatusActive {
			abortWithError(c, http.StatusUnauthorized, "Account is not active")
			return
		}

		user.PasswordHash = ""
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. Must run after IdentityMiddleware.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(contextUserKey); !exists {
			abortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles. Must run after
// RequireAuth.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			abortWithError(c, http.StatusForbidden, "Access denied for this role")
			return
		}
		c.Next()
	}
}

// currentUser fetches the resolved principal from the request context.
func currentUser(c *gin.Context) (*domain.User, bool) {
	raw, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*domain.User)
	return user, ok
}

// abortWithError returns the uniform error shape: a JSON body with a single
// message field.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}
