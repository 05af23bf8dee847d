package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/models"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

// RequireRoles only lets viewers with one of roles through. It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		viewer := ViewerFrom(c)
		if viewer == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[viewer.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}
