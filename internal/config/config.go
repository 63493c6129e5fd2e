package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the example server configuration, loaded from the
// environment (optionally via a .env file).
type Config struct {
	HTTPAddr string

	APIBaseURL string
	APIKey     string

	MerchantID    string
	CartTokenPath string

	// Optional backing stores; adapters are skipped when unset.
	MySQLDSN  string
	RedisAddr string

	// Simulated wallet capability for the example server.
	WalletPayments bool
	WalletCards    bool
	WalletApprove  bool

	OpenBrowser bool
}

func Load() (*Config, error) {
	// Missing .env is fine; plain environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:       getEnvOrDefault("HTTP_ADDR", ":8080"),
		APIBaseURL:     getEnvOrDefault("COMMERCE_API_URL", "http://localhost:9292"),
		APIKey:         os.Getenv("COMMERCE_API_KEY"),
		MerchantID:     os.Getenv("MERCHANT_ID"),
		CartTokenPath:  getEnvOrDefault("CART_TOKEN_PATH", "wallet"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		WalletPayments: getEnvBool("WALLET_PAYMENTS", true),
		WalletCards:    getEnvBool("WALLET_CARDS", true),
		WalletApprove:  getEnvBool("WALLET_APPROVE", true),
		OpenBrowser:    getEnvBool("OPEN_BROWSER", false),
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
