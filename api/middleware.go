package api

import (
	"strings"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// TokenVerifier checks a bearer credential and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
)

// AuthRequired verifies the bearer token and stows the account identity in
// the request context. Missing or malformed credentials are 401s.
func AuthRequired(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			respondError(c, domain.ErrUnauthenticated)
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// AdminRequired gates administrator-only routes. It runs after AuthRequired;
// handlers behind it never check privilege themselves.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsAdmin) {
			respondError(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func requesterID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

func requesterIsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxIsAdmin)
}
