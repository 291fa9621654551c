package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP_ADDR   string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	SQLITE_PATH string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	KAFKA_ADDRESS string

	LOG_LEVEL string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:     envDefault("HTTP_ADDR", ":8080"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       envDefault("DB_PORT", "5432"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		SQLITE_PATH:   envDefault("SQLITE_PATH", "ecommerce.db"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		LOG_LEVEL:     envDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// KafkaBrokers splits KAFKA_ADDRESS on commas; empty means events are disabled.
func (c *Config) KafkaBrokers() []string {
	if c.KAFKA_ADDRESS == "" {
		return nil
	}
	parts := strings.Split(c.KAFKA_ADDRESS, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
