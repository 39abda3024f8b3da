package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
)

const ContextCaller = "caller"

func AuthMiddleware(tokens auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}

		caller, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextCaller, caller)
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (policy.Caller, bool) {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return policy.Caller{}, false
	}
	caller, ok := v.(policy.Caller)
	return caller, ok
}
