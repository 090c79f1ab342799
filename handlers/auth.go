package handlers

import (
	"net/http"
	"time"

	"chambers/middleware"
	"chambers/services/auth"
	"chambers/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the admin login and logout routes.
type AuthHandler struct {
	Auth       *auth.Service
	SessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authSvc *auth.Service, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{Auth: authSvc, SessionTTL: sessionTTL}
}

// LoginPageHandler renders the login state, surfacing a pending flash
// message from a failed attempt.
func (h *AuthHandler) LoginPageHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"error": utils.PopFlash(c)})
}

// LoginHandler processes the credential form. Success opens a session and
// lands on the admin practice areas page; failure bounces back to the login
// page with a generic message.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.Auth.Login(c.Request.Context(), username, password)
	if err != nil {
		utils.GetLogger().Info("login rejected", zap.String("username", username))
		utils.SetFlash(c, "Invalid username or password")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin/practice-areas")
}

// LogoutHandler destroys the session and returns home.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		h.Auth.Logout(c.Request.Context(), token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
