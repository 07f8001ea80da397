package middlewares

import (
	"context"
	"net/http"
	"strings"

	"bitbucket.org/gfmis/budget_backend/appctx"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type authString string

const authContextKey = authString("auth")

// AuthMiddleware validates the bearer token and stashes the claims plus a
// correlation id in the request context. Requests without a token pass
// through; RequireAuth / Restrict decide whether that is acceptable.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := appctx.Set(c.Request.Context(), appctx.ContextKeyCorrelationId, uuid.NewString())

		auth := c.Request.Header.Get("Authorization")
		if auth == "" {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")

		validate, err := utils.JwtValidate(token)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			c.Abort()
			return
		}

		customClaim, _ := validate.Claims.(*utils.JwtCustomClaim)

		ctx = context.WithValue(ctx, authContextKey, customClaim)
		ctx = appctx.Set(ctx, appctx.ContextKeyUserId, customClaim.ID)
		ctx = appctx.Set(ctx, appctx.ContextKeyRole, customClaim.Role)
		ctx = appctx.Set(ctx, appctx.ContextKeyOrganization, customClaim.Organization)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func CtxValue(ctx context.Context) *utils.JwtCustomClaim {
	raw, _ := ctx.Value(authContextKey).(*utils.JwtCustomClaim)
	return raw
}

// RequireAuth aborts unauthenticated requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CtxValue(c.Request.Context()) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "please log in"})
			c.Abort()
			return
		}
		c.Next()
	}
}
