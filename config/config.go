package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	AppEnv     string
	// Frontend origin, used for CORS and post-payment browser redirects
	FrontendURL string
	// Public base URL of this server, used to build gateway callback URLs
	BaseURL string
	// Admin credentials (single operator account)
	AdminEmail    string
	AdminPassword string
	// SMTP settings for approval emails
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	// PhonePe gateway settings
	PhonePeClientID      string
	PhonePeClientSecret  string
	PhonePeClientVersion string
	PhonePeMerchantID    string
	PhonePeEnv           string // "production" or "sandbox"
	PhonePeBaseURL       string // optional override of the API base
	PhonePeAuthURL       string // optional override of the auth base
	RedisAddr            string
	RedisPassword        string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               os.Getenv("DB_PORT"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Port:                 getenvOrDefault("PORT", "8080"),
		AppEnv:               getenvOrDefault("APP_ENV", "development"),
		FrontendURL:          getenvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		BaseURL:              getenvOrDefault("BASE_URL", "http://localhost:8080"),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getenvOrDefault("SMTP_PORT", "587"),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPass:             os.Getenv("SMTP_PASS"),
		PhonePeClientID:      os.Getenv("PHONEPE_CLIENT_ID"),
		PhonePeClientSecret:  os.Getenv("PHONEPE_CLIENT_SECRET"),
		PhonePeClientVersion: getenvOrDefault("PHONEPE_CLIENT_VERSION", "1"),
		PhonePeMerchantID:    os.Getenv("PHONEPE_MERCHANT_ID"),
		PhonePeEnv:           getenvOrDefault("PHONEPE_ENV", "sandbox"),
		PhonePeBaseURL:       os.Getenv("PHONEPE_BASE_URL"),
		PhonePeAuthURL:       os.Getenv("PHONEPE_AUTH_URL"),
		RedisAddr:            getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
	}
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// IsProduction gates verbose error details out of API responses.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
