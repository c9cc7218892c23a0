package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller id when the deployment sits behind a trusted gateway.
const UserIDHeader = "X-Sharer-User-Id"

// Identify is a Gin middleware that resolves the caller.
// A bearer JWT in the Authorization header always wins. Without one, and only when
// trustHeader is set, the caller id is read from X-Sharer-User-Id.
func Identify(jwtManager *JWTManager, trustHeader bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid Authorization header format",
				})
				return
			}

			if jwtManager == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "token authentication is disabled",
				})
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid or expired token",
				})
				return
			}

			setUserID(c, claims.UserID)
			c.Next()
			return
		}

		if trustHeader {
			if raw := strings.TrimSpace(c.GetHeader(UserIDHeader)); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
						"error": "invalid " + UserIDHeader + " header",
					})
					return
				}
				setUserID(c, id.String())
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing caller identity",
		})
	}
}
