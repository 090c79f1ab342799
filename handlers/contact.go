package handlers

import (
	"net/http"
	"strings"

	"chambers/models"
	"chambers/services/mail"
	"chambers/services/verify"
	"chambers/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactHandler relays contact form enquiries: human verification first,
// then mail dispatch, with the outcome surfaced as a flash message.
type ContactHandler struct {
	Mailer  mail.Mailer
	Captcha verify.CaptchaVerifier
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(mailer mail.Mailer, captcha verify.CaptchaVerifier) *ContactHandler {
	return &ContactHandler{Mailer: mailer, Captcha: captcha}
}

// ContactFormHandler serves POST /contact.
func (h *ContactHandler) ContactFormHandler(c *gin.Context) {
	msg := models.ContactMessage{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		utils.SetFlash(c, "Please fill in your name, email and message.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	token := c.PostForm("g-recaptcha-response")
	if err := h.Captcha.Verify(c.Request.Context(), token, c.ClientIP()); err != nil {
		utils.SetFlash(c, "Verification failed. Please try again.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.Mailer.SendContactMessage(c.Request.Context(), msg); err != nil {
		utils.GetLogger().Error("failed to send contact message", zap.Error(err))
		utils.SetFlash(c, "Sorry, your message could not be sent. Please try again later.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	utils.SetFlash(c, "Thank you for your message. We will be in touch.")
	c.Redirect(http.StatusSeeOther, "/")
}
