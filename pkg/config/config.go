package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	AuthMode                string // "jwt" or "firebase"
	FirebaseCredentialsPath string

	// Social core tuning
	ReplyDepthCap               int
	NotificationRetentionDays   int
	NotificationCleanupInterval int // minutes
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                        getEnv("PORT", "8080"),
		Env:                         getEnv("ENV", "development"),
		PostgresConnStr:             getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                    getEnv("MONGO_URI", ""),
		MongoDatabase:               getEnv("MONGO_DATABASE", "pawgrounds"),
		JWTSecret:                   getEnv("JWT_SECRET", "supersecretjwtkey"),
		AuthMode:                    getEnv("AUTH_MODE", "jwt"),
		FirebaseCredentialsPath:     getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		ReplyDepthCap:               getEnvInt("REPLY_DEPTH_CAP", 3),
		NotificationRetentionDays:   getEnvInt("NOTIFICATION_RETENTION_DAYS", 90),
		NotificationCleanupInterval: getEnvInt("NOTIFICATION_CLEANUP_INTERVAL_MINUTES", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %d", value, key, defaultValue)
		return defaultValue
	}
	return n
}
