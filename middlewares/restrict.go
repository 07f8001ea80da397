package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Restrict allows only the named roles past this point.
func Restrict(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim := CtxValue(c.Request.Context())
		if claim == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "please log in"})
			c.Abort()
			return
		}
		for _, role := range allowedRoles {
			if claim.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "you are not authorized"})
		c.Abort()
	}
}
