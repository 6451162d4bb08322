package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	StatsCacheTTL  time.Duration
	LogLevel       string
	LogFormat      string
	ReleaseMode    bool
}

// Load reads envFile when present, then the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		// a missing file is fine; the environment may carry everything
		_ = godotenv.Load(envFile)
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || tokenHours < 1 {
		tokenHours = 24
	}
	cacheSeconds, err := strconv.Atoi(getEnv("STATS_CACHE_TTL_SECONDS", "30"))
	if err != nil || cacheSeconds < 0 {
		cacheSeconds = 30
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    databaseURL(),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:       time.Duration(tokenHours) * time.Hour,
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		StatsCacheTTL:  time.Duration(cacheSeconds) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		ReleaseMode:    os.Getenv("GIN_MODE") == "release",
	}

	if cfg.JWTSecret == "" {
		if cfg.ReleaseMode {
			return Config{}, fmt.Errorf("JWT_SECRET environment variable is required in release mode")
		}
		cfg.JWTSecret = "default_super_secret_key" // development fallback only
	}

	return cfg, nil
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// databaseURL prefers DATABASE_URL and falls back to the DB_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return "postgres://" + getEnv("DB_USER", "postgres") + ":" + getEnv("DB_PASSWORD", "postgres") +
		"@" + getEnv("DB_HOST", "localhost") + ":" + getEnv("DB_PORT", "5432") +
		"/" + getEnv("DB_NAME", "veggie") + "?sslmode=" + getEnv("DB_SSLMODE", "disable")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
