package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lunch-vote/utils"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// AuthMiddleware resolves an optional bearer access token. Requests without an
// Authorization header continue anonymously; a header that does not carry a
// valid access token is rejected with 401.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header must contain two space-delimited values: Bearer <token>"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimSpace(tokenString), utils.TokenTypeAccess, key)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Given token not valid for any token type"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
