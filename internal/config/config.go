package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	RedisAddr    string
	KafkaBrokers []string

	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool

	GeminiAPIKey string

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string

	UploadDir string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getenv("APP_PORT", "5000"),
		AppEnv:     os.Getenv("APP_ENV"),

		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),

		MidtransServerKey:  getenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-YOUR_SERVER_KEY_HERE"),
		MidtransClientKey:  getenv("MIDTRANS_CLIENT_KEY", "SB-Mid-client-YOUR_CLIENT_KEY_HERE"),
		MidtransProduction: os.Getenv("MIDTRANS_PRODUCTION") == "true",

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
