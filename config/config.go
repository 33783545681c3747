package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret      string
	GatewayKeyHash string

	FormCreateURL string
	FormEditURL   string

	PhotoBucket string

	GenAIProject  string
	GenAILocation string
	SupportFAQ    string
}

func LoadConfig() Config {
	// .env is optional; real deployments pass env vars directly
	_ = godotenv.Load()

	return Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		GatewayKeyHash: os.Getenv("GATEWAY_KEY_HASH"),

		FormCreateURL: os.Getenv("FORM_CREATE_URL"),
		FormEditURL:   os.Getenv("FORM_EDIT_URL"),

		PhotoBucket: os.Getenv("PHOTO_BUCKET"),

		GenAIProject:  os.Getenv("GENAI_PROJECT"),
		GenAILocation: os.Getenv("GENAI_LOCATION"),
		SupportFAQ:    os.Getenv("SUPPORT_FAQ"),
	}
}
