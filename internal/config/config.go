package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	// The admin identity is a fixed, reserved email compared
	// case-insensitively against the authenticated email.
	AdminEmail string

	JWTSecret      string
	JWTExpireHours int

	FirebaseCredentialsFile string
	FirebaseDatabaseURL     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	FrontendURL string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@gmail.com"),

		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		FirebaseDatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "servepupil"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

// IsAdminEmail reports whether the given authenticated email belongs to the
// reserved admin account.
func (c *Config) IsAdminEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), c.AdminEmail)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
