package authmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware returns a gin middleware that verifies the bearer token
// from the Authorization header (or a ?token= query fallback, matching
// the teacher's AuthMiddleware), rejecting the request with 401 on
// failure and otherwise storing "authorId"/"authorName" in the gin
// context for downstream handlers.
func Middleware(signer *Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := signer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("authorId", claims.AuthorID)
		c.Set("authorName", claims.Name)
		c.Next()
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
