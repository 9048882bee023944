package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accounthub/internal/envelope"
	"accounthub/internal/token"
)

// Context keys populated for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// AccessTokenGuard rejects requests without a valid bearer token of
// kind access. Refresh, reset and verification tokens are never
// accepted here, whatever their signature says.
func AccessTokenGuard(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := tokens.Verify(tokenStr, token.KindAccess)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	api := envelope.APIError(message, http.StatusUnauthorized, c.Request.URL.Path)
	c.AbortWithStatusJSON(api.StatusCode, api)
}
