package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	RedisAddr      string // empty disables the redis push bridge
	RedisPassword  string
	FetchTimeout   time.Duration
	SearchDebounce time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := Config{
		Port:           get("PORT", "8080"),
		DBDSN:          get("DB_DSN", "alhaja.db"),
		LogFile:        get("LOG_FILE", "./alhaja.log"),
		RedisAddr:      get("REDIS_ADDR", ""),
		RedisPassword:  get("REDIS_PASSWORD", ""),
		FetchTimeout:   millis("FETCH_TIMEOUT_MS", 8000),
		SearchDebounce: millis("SEARCH_DEBOUNCE_MS", 300),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s REDIS=%q fetch_timeout=%s", cfg.Port, cfg.DBDSN, cfg.RedisAddr, cfg.FetchTimeout)
	return cfg
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func millis(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return time.Duration(def) * time.Millisecond
}
