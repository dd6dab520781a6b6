package config

import (
	"os"
	"strconv"
	"strings"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// SMTP configuration for transactional email
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
	Enabled  bool
}

// Stripe billing configuration
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceStarter  string
	PricePro      string
	SuccessURL    string
	CancelURL     string
}

// Config holds all application configuration
type Config struct {
	Server                ServerConfig
	Mongo                 MongoConfig
	Auth                  AuthConfig
	SMTP                  SMTPConfig
	Stripe                StripeConfig
	APIKeyCacheTTLSeconds int
}

// Default configuration values
const (
	DefaultServerPort    = "8080"
	DefaultServerHost    = ""
	DefaultMongoURI      = "mongodb://localhost:27017/taglayer"
	DefaultMongoDB       = "taglayer"
	DefaultTokenTTLHours = 24
	DefaultSMTPHost      = "smtp.gmail.com"
	DefaultSMTPPort      = "587"
	DefaultSuccessURL    = "https://app.taglayer.io/billing/success"
	DefaultCancelURL     = "https://app.taglayer.io/billing/cancel"

	DefaultAPIKeyCacheTTLSeconds = 3600 // 1 hour
)

// New returns a new Config with values from the environment, falling
// back to defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvInt("JWT_TTL_HOURS", DefaultTokenTTLHours),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", DefaultSMTPHost),
			Port:     getEnv("SMTP_PORT", DefaultSMTPPort),
			From:     getEnv("SMTP_FROM", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			Enabled:  getEnvBool("SMTP_ENABLED", true),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceStarter:  getEnv("STRIPE_PRICE_STARTER", ""),
			PricePro:      getEnv("STRIPE_PRICE_PRO", ""),
			SuccessURL:    getEnv("STRIPE_SUCCESS_URL", DefaultSuccessURL),
			CancelURL:     getEnv("STRIPE_CANCEL_URL", DefaultCancelURL),
		},
		APIKeyCacheTTLSeconds: getEnvInt("API_KEY_CACHE_TTL_SECONDS", DefaultAPIKeyCacheTTLSeconds),
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Addr returns the SMTP host:port dial address
func (c *SMTPConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
