package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	mem "hbnb/pkg/memcache"
	"hbnb/pkg/utils"
)

const (
	CtxUserID  = "user_id"
	CtxEmail   = "email"
	CtxIsAdmin = "is_admin"
	CtxClaims  = "claims"
)

func JWTAuthMiddleware(tokens *utils.TokenManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if isRevoked(revoked, claims) {
			utils.RespondError(c, http.StatusUnauthorized, "Token is logged out")
			c.Abort()
			return
		}

		// Pass user information to the next handler
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// OptionalJWTMiddleware records the caller when a valid bearer token is
// present and otherwise lets the request through anonymously.
func OptionalJWTMiddleware(tokens *utils.TokenManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil || isRevoked(revoked, claims) {
			c.Next()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// isRevoked covers logout of this token and a cutoff for all of the user's
// tokens. iat has second resolution, so a token issued in the same second as
// the cutoff is still accepted.
func isRevoked(revoked mem.RevokedTokenStore, claims *utils.Claims) bool {
	if revoked == nil {
		return false
	}
	if revoked.IsRevoked(claims.ID) {
		return true
	}
	cutoff := revoked.UserRevokedAt(claims.UserID)
	if cutoff.IsZero() {
		return false
	}
	if claims.IssuedAt == nil {
		return true
	}
	return claims.IssuedAt.Time.Before(cutoff.Truncate(time.Second))
}

// AdminMiddleware must run after JWTAuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the caller identity stored by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (userID string, isAdmin bool) {
	return c.GetString(CtxUserID), c.GetBool(CtxIsAdmin)
}

func CurrentClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
