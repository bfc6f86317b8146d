package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Text extraction (OpenAI-compatible chat completions endpoint)
	ChatAPIURL string
	ChatAPIKey string
	ChatModel  string

	// Voice extraction (Gemini generateContent endpoint)
	GeminiAPIURL string
	GeminiAPIKey string
	GeminiModel  string

	// Shared AI settings
	AITimeout       time.Duration
	DefaultTimezone string
	DefaultCurrency string

	// Optional override for the text extraction system prompt. When empty,
	// the versioned default from the parse package is used.
	ParseSystemPrompt string

	// Events (RabbitMQ); publishing is disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Rate limit for the AI extraction routes, per client.
	AIRateLimitPerMinute int
	AIRateLimitBurst     int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "spendwise"),
		DBPassword: getEnv("DB_PASSWORD", "spendwise"),
		DBName:     getEnv("DB_NAME", "spendwise"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// AI endpoints
		ChatAPIURL:   getEnv("CHAT_API_URL", "https://router.huggingface.co/v1"),
		ChatAPIKey:   getEnv("CHAT_API_KEY", ""),
		ChatModel:    getEnv("CHAT_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "Asia/Kolkata"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "INR"),

		ParseSystemPrompt: getEnv("PARSE_SYSTEM_PROMPT", ""),

		// Events
		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendwise"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense-events"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Parse AI call timeout. This bounds the wall-clock time of a single
	// extraction attempt; there are no retries against the AI endpoints.
	timeoutStr := getEnv("AI_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid AI_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	config.AITimeout = timeout

	config.AIRateLimitPerMinute = getEnvInt("AI_RATE_LIMIT_PER_MINUTE", 10)
	config.AIRateLimitBurst = getEnvInt("AI_RATE_LIMIT_BURST", 3)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
