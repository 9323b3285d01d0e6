package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds the HTTP server settings.
type Config struct {
	Port         string
	DBPath       string // empty disables the layout store
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// LoadConfig reads the configuration from SITEPLANNER_* environment
// variables, falling back to defaults.
func LoadConfig() Config {
	return Config{
		Port:         getEnv("SITEPLANNER_PORT", "8080"),
		DBPath:       getEnv("SITEPLANNER_DB", ""),
		ReadTimeout:  time.Duration(getEnvAsInt("SITEPLANNER_READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("SITEPLANNER_WRITE_TIMEOUT", 60)) * time.Second,
		BodyLimit:    getEnvAsInt("SITEPLANNER_BODY_LIMIT", 8<<20),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
