package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashShowsExactlyOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/set", func(c *gin.Context) {
		SetFlash(c, "Entry deleted.")
		c.Status(http.StatusNoContent)
	})
	router.GET("/read", func(c *gin.Context) {
		c.String(http.StatusOK, PopFlash(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The message rides encoded, never in the clear.
	assert.NotContains(t, cookies[0].Value, "Entry")

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "Entry deleted.", w.Body.String())

	// Reading clears the cookie.
	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "flash" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, PopFlash(c))
}
