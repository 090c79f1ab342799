package routes

import (
	"net/http"
	"time"

	"chambers/handlers"
	"chambers/middleware"
	"chambers/services/auth"
	"chambers/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the route handlers assembled at startup.
type HandlerBundle struct {
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Public  *handlers.PublicHandler
	Files   *handlers.FileHandler
	Contact *handlers.ContactHandler

	AuthService *auth.Service
}

// RegisterPublicRoutes registers the read-only site views and the contact
// form.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/", hb.Public.HomeHandler)
	r.GET("/team", hb.Public.ListHandler("team"))
	r.GET("/practice-areas", hb.Public.ListHandler("practice-areas"))
	r.GET("/newsletters", hb.Public.ListHandler("newsletters"))
	r.GET("/events", hb.Public.ListHandler("events"))
	r.GET("/events/:id", hb.Public.DetailHandler("events"))
	r.GET("/file/:id", hb.Files.GetFileHandler)
	r.POST("/contact", hb.Contact.ContactFormHandler)
}

// RegisterAuthRoutes registers login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/login", hb.Auth.LoginPageHandler)
	r.POST("/login", hb.Auth.LoginHandler)
	r.GET("/logout", hb.Auth.LogoutHandler)
}

// RegisterAdminRoutes registers the content management endpoints. Every
// route requires a live admin session.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(middleware.RequireAdmin(hb.AuthService))
		adminGroup.GET("/:type", hb.Admin.ListHandler)
		adminGroup.POST("/:type", hb.Admin.CreateHandler)
		adminGroup.POST("/:type/delete/:id", hb.Admin.DeleteHandler)
		adminGroup.GET("/:type/edit/:id", hb.Admin.EditPageHandler)
		adminGroup.POST("/:type/edit/:id", hb.Admin.UpdateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Bundled site media (carousel images etc.) served as-is.
	r.Static("/MEDIA", "./public/MEDIA")

	RegisterPublicRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
