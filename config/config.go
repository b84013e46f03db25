package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Database
	DBPath string

	// Application
	AppEnv string

	// Logging
	LogLevel string
	LogFile  string

	// Report export
	ExportDir string

	// Feature Toggles
	SkipMigrate bool
}

// IsDevelopment reports whether the app runs with development defaults (stdout logs, verbose SQL).
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.AppEnv) == "development"
}

var AppConfig *Config

// LoadConfig reads .env (when present) and the environment into AppConfig.
func LoadConfig() {
	if err := loadDotEnv(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := fromEnv()
	if err := validateConfig(cfg); err != nil {
		log.Fatal(err)
	}
	AppConfig = cfg
}

func fromEnv() *Config {
	return &Config{
		DBPath: getEnv("DB_PATH", "student_management.db"),
		AppEnv: getEnv("APP_ENV", "development"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", "logs/app.log"),

		ExportDir: getEnv("EXPORT_DIR", "exports"),

		SkipMigrate: strings.ToLower(getEnv("SKIP_MIGRATE", "false")) == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadDotEnv() error {
	path := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return godotenv.Load(path)
}

func validateConfig(c *Config) error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}
