// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string

	// Generative AI backend (OpenAI-compatible endpoint).
	GenAIAPIKey  string
	GenAIModel   string
	GenAIBaseURL string
	// Upper bound on a single completion call, in seconds.
	AITimeoutSeconds int

	// Email verification.
	FrontendURL  string
	ResendAPIKey string
	MailFrom     string

	// Comma-separated allowed origins; only honored in production.
	CORSOrigins string

	LogLevel string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "5000"),
		Environment:      env,
		DatabasePath:     getEnv("DATABASE_PATH", "pahiy_ai.db"),
		GenAIAPIKey:      getEnv("GENAI_API_KEY", ""),
		GenAIModel:       getEnv("GENAI_MODEL", "gemini-2.0-flash-lite"),
		GenAIBaseURL:     getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		AITimeoutSeconds: getEnvAsInt("AI_TIMEOUT_SECONDS", 120),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5000"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		MailFrom:         getEnv("MAIL_FROM", "Pahiy AI <noreply@dockie.site>"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
		LogLevel:         getEnv("LOG_LEVEL", ""),
	}

	// Validation for production environments
	if cfg.IsProduction() {
		missing := []string{}
		if cfg.GenAIAPIKey == "" {
			missing = append(missing, "GENAI_API_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// IsProduction reports whether the production posture is active. Handlers
// use it to decide whether internal error detail may reach the caller.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
