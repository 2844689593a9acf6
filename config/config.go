package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBDialect string // sqlite, postgres or mysql
	DBName    string
	JWTKey    string

	VerifyApiURL     string // OTP verification vendor base URL
	VerifyApiKey     string
	VerifyServiceSID string

	OfferSource string // ai, scraper or static
	OfferApiURL string // AI completion vendor base URL
	OfferApiKey string
	OfferModel  string

	OTPResendSeconds  int // min gap between OTP sends per phone
	OfferLogRetention int // days to keep offer payload logs
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBDialect: getEnv("DB_DIALECT", "sqlite"),
		DBName:    getEnv("DB_NAME", "offersense.db"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),

		VerifyApiURL:     getEnv("VERIFY_API_URL", "https://verify.vendor.example/v2"),
		VerifyApiKey:     getEnv("VERIFY_API_KEY", "defaultSecret"),
		VerifyServiceSID: getEnv("VERIFY_SERVICE_SID", ""),

		OfferSource: getEnv("OFFER_SOURCE", "static"),
		OfferApiURL: getEnv("OFFER_API_URL", "https://api.openai.com"),
		OfferApiKey: getEnv("OFFER_API_KEY", ""),
		OfferModel:  getEnv("OFFER_MODEL", "gpt-4o-mini"),

		OTPResendSeconds:  getEnvInt("OTP_RESEND_SECONDS", 60),
		OfferLogRetention: getEnvInt("OFFER_LOG_RETENTION_DAYS", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.OfferSource == "ai" && AppConfig.OfferApiKey == "" {
		log.Println("Warning: OFFER_SOURCE=ai but OFFER_API_KEY is empty.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
