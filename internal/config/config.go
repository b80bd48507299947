package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`
	LLMURL        string `mapstructure:"LLM_URL"`
	StorageDir    string `mapstructure:"STORAGE_DIR"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
	AIWorkers     int    `mapstructure:"AI_WORKERS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		LLMURL:        os.Getenv("LLM_URL"),
		StorageDir:    os.Getenv("STORAGE_DIR"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LLMURL == "" {
		cfg.LLMURL = "http://localhost:8080"
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "./uploads"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	cfg.AIWorkers = 2
	if raw := os.Getenv("AI_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("AI_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.AIWorkers = n
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
