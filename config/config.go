package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the process configuration, env-driven with local defaults
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
}

// Load reads the configuration from the environment. A .env file is
// honored when present so local runs don't need exported vars.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "auditdesk"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
