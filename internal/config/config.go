package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	Interview InterviewConfig
	Client    ClientConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MaxOpenConns int
	MaxIdleConns int
}

// QdrantConfig is optional; an empty URL disables reference retrieval.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

// InterviewConfig bounds what a session may ask for and how long the server
// keeps idle sessions.
type InterviewConfig struct {
	MinDifficulty    int
	MaxDifficulty    int
	MaxRounds        int
	RetryMaxAttempts int
	SessionTTL       time.Duration
	ReaperInterval   time.Duration
}

type ClientConfig struct {
	APIBase          string
	RequestTimeout   time.Duration
	ActivityCapacity int
	LogFile          string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "interview_coach"),

			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_reference"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Interview: InterviewConfig{
			MinDifficulty:    getEnvAsInt("MIN_DIFFICULTY", 1),
			MaxDifficulty:    getEnvAsInt("MAX_DIFFICULTY", 10),
			MaxRounds:        getEnvAsInt("MAX_ROUNDS", 20),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			SessionTTL:       getEnvAsDuration("SESSION_TTL", "24h"),
			ReaperInterval:   getEnvAsDuration("REAPER_INTERVAL", "10m"),
		},
		Client: ClientConfig{
			APIBase:          getEnv("COACH_API_BASE", "http://localhost:8000"),
			RequestTimeout:   getEnvAsDuration("COACH_REQUEST_TIMEOUT", "90s"),
			ActivityCapacity: getEnvAsInt("COACH_ACTIVITY_CAPACITY", 200),
			LogFile:          getEnv("COACH_LOG_FILE", "coach.log"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
