package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV string
	PORT   int
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// Gemini Configuration
	GEMINI_API_KEY  string
	GEMINI_MODEL    string
	GEMINI_BASE_URL string
	// Misc
	ALLOWED_ORIGINS string
	CRON_ENABLED    bool
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	cronEnabled := true
	if v := os.Getenv("CRON_ENABLED"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			cronEnabled = parsed
		}
	}

	envVariables := &EnviornmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   port,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Gemini
		GEMINI_API_KEY:  os.Getenv("GEMINI_API_KEY"),
		GEMINI_MODEL:    os.Getenv("GEMINI_MODEL"),
		GEMINI_BASE_URL: os.Getenv("GEMINI_BASE_URL"),
		// Misc
		ALLOWED_ORIGINS: os.Getenv("ALLOWED_ORIGINS"),
		CRON_ENABLED:    cronEnabled,
	}

	return envVariables, nil
}
