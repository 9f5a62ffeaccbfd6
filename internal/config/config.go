package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	HTTPPort     string
	DatabasePath string // SQLite file; snapshots are whole-file copies of it
	BackupsDir   string
	APIKeyFile   string
	LogFile      string
	CORSOrigins  string
	LockWait     time.Duration // ceiling for store-lock acquisition before Busy
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "5000"),
		DatabasePath: getEnv("DATABASE_PATH", "server_data.db"),
		BackupsDir:   getEnv("BACKUPS_DIR", "backups"),
		APIKeyFile:   getEnv("API_KEY_FILE", "api_key.txt"),
		LogFile:      getEnv("LOG_FILE", "logs/server.log"),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
		LockWait:     getDuration("LOCK_WAIT", 5*time.Second),
	}

	if cfg.CORSOrigins == "*" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is open to all origins, set your own domain for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] %s=%q is not a valid duration, using %s", key, v, def)
		return def
	}
	return d
}
