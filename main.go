package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chambers/config"
	"chambers/database"
	contentRepo "chambers/database/repository/content"
	userRepo "chambers/database/repository/user"
	"chambers/handlers"
	"chambers/middleware"
	"chambers/routes"
	"chambers/services/auth"
	"chambers/services/content"
	"chambers/services/mail"
	"chambers/services/storage"
	"chambers/services/verify"
	"chambers/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("main: invalid configuration: %v", err)
	}
	logger := utils.GetLogger()

	// Database and session store connections.
	client, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	db := client.Database(config.AppConfig.DatabaseName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Sugar().Fatalf("main: failed to connect to redis: %v", err)
	}
	cancelPing()

	// Attachment storage backend.
	var backend storage.Backend
	switch config.AppConfig.StorageBackend {
	case "cloudinary":
		backend, err = storage.NewCloudinaryBackend(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
	default:
		backend, err = storage.NewFSBackend(config.AppConfig.UploadDir)
	}
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize attachment storage: %v", err)
	}

	// Repositories, attachment store and the content workflow.
	repoFactory := contentRepo.NewMongoFactory(db)
	store := storage.NewStore(backend, repoFactory("attachments"))
	workflow := content.NewWorkflow(repoFactory, store)
	types := content.Types(config.AppConfig.MaxUploadMB * 1024 * 1024)

	// Auth.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
	authService := auth.NewService(
		userRepo.NewMongoUserRepo(db),
		auth.NewRedisSessionStore(redisClient),
		config.AppConfig.SessionSecret,
		sessionTTL,
	)

	// Contact form delivery.
	var mailer mail.Mailer = mail.LogMailer{}
	if config.AppConfig.ResendAPIKey != "" {
		mailer, err = mail.NewResendMailer(
			config.AppConfig.ResendAPIKey,
			config.AppConfig.MailFrom,
			config.AppConfig.MailTo,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize mailer: %v", err)
		}
	}
	var captcha verify.CaptchaVerifier = verify.NoopVerifier{}
	if config.AppConfig.RecaptchaSecret != "" {
		captcha = verify.NewRecaptchaVerifier(config.AppConfig.RecaptchaSecret)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.MaxMultipartMemory = config.AppConfig.MaxUploadMB << 20

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Auth:        handlers.NewAuthHandler(authService, sessionTTL),
		Admin:       handlers.NewAdminHandler(workflow, types),
		Public:      handlers.NewPublicHandler(workflow, types),
		Files:       handlers.NewFileHandler(store),
		Contact:     handlers.NewContactHandler(mailer, captcha),
		AuthService: authService,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(redisClient, client)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
