// Package config holds process configuration, loaded once at startup from
// the environment. Runtime-editable settings (app name, gateway keys,
// social links) live in the database instead; see the settings handler.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	BaseURL           string
	DBDSN             string
	AllowRegistration bool
	CORSOrigins       []string
	GatewaySecret     string // payment signature verification key
}

// Load reads .env (if present) and the environment into a Config. Call it
// once in main; pass the struct down instead of re-reading os.Getenv in
// business code. Restart-or-Reload to pick up changes.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}
	return Reload()
}

// Reload re-reads the environment without touching .env again.
func Reload() *Config {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		BaseURL:           getenv("BASE_URL", "http://localhost:8080"),
		DBDSN:             os.Getenv("DB_DSN"),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		GatewaySecret:     os.Getenv("PAYMENT_GATEWAY_SECRET"),
	}

	origins := getenv("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
