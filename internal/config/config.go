package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Port            string  `toml:"port"`
	DBConn          string  `toml:"db_conn"`
	LogLevel        string  `toml:"log_level"`
	TokenSecret     string  `toml:"token_secret"`
	StorageDir      string  `toml:"storage_dir"`
	RedisAddr       string  `toml:"redis_addr"`
	ESGRegistryURL  string  `toml:"esg_registry_url"`
	AssistantURL    string  `toml:"assistant_url"`
	AssistantAPIKey string  `toml:"assistant_api_key"`
	AssistantModel  string  `toml:"assistant_model"`
	BaseRate        float64 `toml:"base_rate"`
	TermYears       int     `toml:"term_years"`
	SMTPHost        string  `toml:"smtp_host"`
	SMTPPort        string  `toml:"smtp_port"`
	SMTPUsername    string  `toml:"smtp_username"`
	SMTPPassword    string  `toml:"smtp_password"`
	SenderEmail     string  `toml:"sender_email"`
	ReviewTeamEmail string  `toml:"review_team_email"`
}

// NewConfig loads configuration from environment variables. When CONFIG_FILE
// points at a TOML file, its values overlay the environment defaults.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5432 user=greencred password=greencred dbname=greencred sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		TokenSecret:     getEnv("TOKEN_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		StorageDir:      getEnv("STORAGE_DIR", "./data/documents"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		ESGRegistryURL:  getEnv("ESG_REGISTRY_URL", ""),
		AssistantURL:    getEnv("ASSISTANT_URL", "https://api.openai.com"),
		AssistantAPIKey: getEnv("ASSISTANT_API_KEY", ""),
		AssistantModel:  getEnv("ASSISTANT_MODEL", "gpt-4o-mini"),
		BaseRate:        getEnvFloat("BASE_RATE", 7.5),
		TermYears:       getEnvInt("TERM_YEARS", 5),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@greencred.example"),
		ReviewTeamEmail: getEnv("REVIEW_TEAM_EMAIL", "esg-review@greencred.example"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	if cfg.BaseRate < 0 {
		return nil, fmt.Errorf("BASE_RATE must not be negative")
	}
	if cfg.TermYears <= 0 {
		return nil, fmt.Errorf("TERM_YEARS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
