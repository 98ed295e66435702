package config

import (
	"os"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Paystack   PaystackConfig
	Admin      AdminConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// PaystackConfig carries the gateway credentials and callback base explicitly
// instead of reading process-wide environment inside the client.
type PaystackConfig struct {
	SecretKey       string
	BaseURL         string
	CallbackBaseURL string // e.g. https://foundation.example.org - redirect target after hosted checkout
	Timeout         time.Duration
}

// AdminConfig seeds the first back-office account on startup.
type AdminConfig struct {
	Email    string
	Password string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8090"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "markaz:markaz@tcp(localhost:3306)/markaz?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  envOr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envOr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "markaz",
		},
		Cloudinary: CloudinaryConfig{
			CloudName: envOr("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    envOr("CLOUDINARY_API_KEY", ""),
			APISecret: envOr("CLOUDINARY_API_SECRET", ""),
		},
		Paystack: PaystackConfig{
			SecretKey:       envOr("PAYSTACK_SECRET_KEY", ""),
			BaseURL:         envOr("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			CallbackBaseURL: envOr("CALLBACK_BASE_URL", "https://markaz.example.org"),
			Timeout:         30 * time.Second,
		},
		Admin: AdminConfig{
			Email:    envOr("ADMIN_EMAIL", "admin@markaz.example.org"),
			Password: envOr("ADMIN_PASSWORD", "change-me-now"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
