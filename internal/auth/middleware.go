package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Required returns middleware that rejects requests without a valid
// bearer token. The error body uses the API's success envelope.
func Required(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := v.VerifyHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// Optional returns middleware that attaches the caller's identity when a
// valid bearer token is present and otherwise leaves the request
// unauthenticated. Malformed tokens are treated as absent, matching the
// graceful degradation of the public endpoints.
func Optional(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := v.VerifyHeader(c.GetHeader("Authorization")); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller's identity, if any
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
