package utils

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// SetFlash stores a one-shot status message for the next rendered page.
// The message rides in a short-lived cookie instead of mutating the session.
func SetFlash(c *gin.Context, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, encoded, 60, "/", "", false, true)
}

// PopFlash returns the pending flash message, if any, and clears it so it is
// shown exactly once.
func PopFlash(c *gin.Context) string {
	encoded, err := c.Cookie(flashCookie)
	if err != nil || encoded == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(decoded)
}
