package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr       string
	GinMode       string
	PublicBaseURL string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr string
	RedisPass string

	JWTSecret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	TextGenURL    string
	TextGenAPIKey string
}

func LoadEnv() Env {
	// .env is optional; deployed environments set real variables.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment")
	}

	appAddr := getenv("APP_ADDR", ":8080")
	baseURL := getenv("PUBLIC_BASE_URL", "http://localhost"+appAddr)

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		PublicBaseURL: strings.TrimRight(baseURL, "/"),

		DBUser: getenv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "hotel_admin"),

		RedisAddr: getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPass: strings.TrimSpace(os.Getenv("REDIS_PASS")),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		CloudinaryCloudName: strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME")),
		CloudinaryAPIKey:    strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY")),
		CloudinaryAPISecret: strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET")),
		CloudinaryFolder:    strings.TrimSpace(os.Getenv("CLOUDINARY_FOLDER")),

		TextGenURL:    strings.TrimSpace(os.Getenv("TEXTGEN_URL")),
		TextGenAPIKey: strings.TrimSpace(os.Getenv("TEXTGEN_API_KEY")),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
