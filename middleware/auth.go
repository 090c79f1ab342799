package middleware

import (
	"net/http"

	"chambers/models"
	"chambers/services/auth"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie holding the signed admin session token.
const SessionCookie = "chambers_session"

const principalKey = "principal"

// RequireAdmin gates admin routes. A request without a valid session is
// redirected to the login page rather than answered with an error.
func RequireAdmin(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		user, err := authSvc.Principal(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(principalKey, user)
		c.Next()
	}
}

// Principal returns the authenticated administrator for the request, if any.
func Principal(c *gin.Context) *models.User {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
