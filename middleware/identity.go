package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"postboard/utils"
)

// ContextIdentityKey is the key used to store the caller identity in Gin context.
const ContextIdentityKey = "identity"

// IdentityRequired extracts the opaque caller identity from the
// authorization header. The value is trusted as-is; there is no token
// verification here, only a refusal to accept a blank identity (rather than
// silently namespacing writes under a sentinel value).
func IdentityRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if identity == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}
		ctx.Set(ContextIdentityKey, identity)
		ctx.Next()
	}
}

// Identity returns the caller identity stored by IdentityRequired.
func Identity(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(ContextIdentityKey)
	if !exists {
		return "", false
	}
	identity, ok := value.(string)
	if !ok || identity == "" {
		return "", false
	}
	return identity, true
}
