package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		AccessSecret:  getEnv("ACCESS_TOKEN_SECRET", "dev-secret"),
		RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", "dev-refresh-secret"),
		AccessTTL:     getDurationEnv("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:    getDurationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:    getIntEnv("BCRYPT_COST", 10),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
