package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration. DATABASE_URL has no default: the site cannot
	// serve anything without its content store, so startup fails fast.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Admin session configuration.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	SessionTTLMin int    `mapstructure:"SESSION_TTL_MIN"`

	// Redis configuration (server-side session records).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Attachment storage.
	StorageBackend string `mapstructure:"STORAGE_BACKEND"` // "fs" or "cloudinary"
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB    int64  `mapstructure:"MAX_UPLOAD_MB"`

	// Cloudinary credentials (used when STORAGE_BACKEND=cloudinary).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Contact form delivery.
	ResendAPIKey    string `mapstructure:"RESEND_API_KEY"`
	MailFrom        string `mapstructure:"MAIL_FROM"`
	MailTo          string `mapstructure:"MAIL_TO"`
	RecaptchaSecret string `mapstructure:"RECAPTCHA_SECRET"`
}

var AppConfig Config

// LoadConfig reads config.yaml (if present) and the environment into AppConfig.
// Missing required values are reported to the caller; serving without them is
// not an option.
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_NAME", "chambers")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_TTL_MIN", 60)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("STORAGE_BACKEND", "fs")
	viper.SetDefault("UPLOAD_DIR", "public/uploads")
	viper.SetDefault("MAX_UPLOAD_MB", 16)
	viper.SetDefault("MAIL_FROM", "")
	viper.SetDefault("MAIL_TO", "")
	viper.SetDefault("RECAPTCHA_SECRET", "")

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine; environment variables take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if AppConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if AppConfig.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is not set")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
