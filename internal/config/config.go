package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string

	KhaltiBaseURL     string
	KhaltiSecretKey   string
	PaymentReturnURL  string
	PaymentWebsiteURL string

	// ReconcileSpec is a cron spec for the payment reconciler.
	ReconcileSpec string
}

// Load reads the environment (optionally seeded from a .env file) into a
// Config, failing on anything the process cannot run without.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		KhaltiBaseURL:     os.Getenv("KHALTI_BASE_URL"),
		KhaltiSecretKey:   os.Getenv("KHALTI_SECRET_KEY"),
		PaymentReturnURL:  getEnv("PAYMENT_RETURN_URL", "https://localhost:3000"),
		PaymentWebsiteURL: getEnv("PAYMENT_WEBSITE_URL", "https://localhost:3000"),
		ReconcileSpec:     getEnv("RECONCILE_SPEC", "@every 3s"),
	}

	for name, value := range map[string]string{
		"DATABASE_URL":      cfg.DatabaseURL,
		"JWT_SECRET":        cfg.JWTSecret,
		"KHALTI_BASE_URL":   cfg.KhaltiBaseURL,
		"KHALTI_SECRET_KEY": cfg.KhaltiSecretKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s not set", name)
		}
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
