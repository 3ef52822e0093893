package middleware

import (
	"strings"

	"blog-api/helper"
	"blog-api/logger"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller from the auth cookie, or from a bearer token
// when the cookie is absent, and stores the user under helper.ContextUser.
func AuthMiddleware(authService services.AuthService, h *helper.HTTPHelper, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(cookieName)
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				h.SendUnauthorizedError(c, "Authentication required", h.EmptyJsonMap())
				c.Abort()
				return
			}

			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
				c.Abort()
				return
			}
		}

		user, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			h.SendServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(helper.ContextUser, user)

		// later log lines of this request carry the caller
		log := logger.FromContext(c.Request.Context()).With("user_id", user.ID)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))

		c.Next()
	}
}
