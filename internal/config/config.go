package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
}

type DatabaseConfig struct {
	Driver      string // "postgres", "sqlite" or "memory"
	Connection  string
	SQLitePath  string
	AutoMigrate bool
}

type SessionConfig struct {
	Store         string // "database", "memory" or "redis"
	TTL           time.Duration
	SweepInterval time.Duration
}

type AuthConfig struct {
	// AdminEmails is matched exactly against the stored (lowercased) email.
	AdminEmails       []string
	BcryptCost        int
	SeedDemoAccounts  bool
	// Empty seed passwords fall back to development defaults outside
	// production. In production the account is not seeded.
	DemoPassword      string
	SeedAdminPassword string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "mock"
	LLMModel      string
	OllamaBaseURL string
	Timeout       time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	dbDriver := strings.ToLower(getEnv("DB_DRIVER", "memory"))
	sessionStore := "database"
	if dbDriver == "memory" {
		sessionStore = "memory"
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Driver:      dbDriver,
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			SQLitePath:  getEnv("SQLITE_PATH", "tutor.db"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(getEnv("SESSION_STORE", sessionStore)),
			TTL:           time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 168)) * time.Hour,
			SweepInterval: time.Duration(getEnvAsInt("SESSION_SWEEP_MINUTES", 60)) * time.Minute,
		},
		Auth: AuthConfig{
			AdminEmails:       getEnvAsList("ADMIN_EMAILS", nil),
			BcryptCost:        getEnvAsInt("BCRYPT_COST", 10),
			SeedDemoAccounts:  getEnvAsBool("SEED_DEMO_ACCOUNTS", false),
			DemoPassword:      getEnv("DEMO_PASSWORD", ""),
			SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AI Tutor"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "mock"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:       time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}

	for _, email := range cfg.Auth.UnmatchableAdminEmails() {
		log.Printf("Warning: ADMIN_EMAILS entry %q is not lowercase and will never match a stored email", email)
	}
	return cfg
}

// UnmatchableAdminEmails lists allow-list entries with upper case letters.
// Stored emails are lowercased, so these grant nothing.
func (a AuthConfig) UnmatchableAdminEmails() []string {
	var out []string
	for _, email := range a.AdminEmails {
		if email != strings.ToLower(email) {
			out = append(out, email)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
