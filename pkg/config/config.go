package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	Postgres Postgres

	// CatalogBaseURL is the base URL of the headless content API that serves
	// read-only product records.
	CatalogBaseURL string

	// IdentityBaseURL is the session introspection endpoint of the external
	// identity provider. Empty means the static dev verifier is used.
	IdentityBaseURL string

	SMTP SMTP

	// ResetLinkBase is prepended to password reset tokens when building the
	// link mailed to the user.
	ResetLinkBase string
}

type Postgres struct {
	Host string
	Port int
	User string
	Pass string
	DB   string
}

type SMTP struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Postgres: Postgres{
			Host: getEnv("POSTGRES_HOST", "localhost"),
			Port: getEnvInt("POSTGRES_PORT", 5432),
			User: getEnv("POSTGRES_USER", "storefront"),
			Pass: getEnv("POSTGRES_PASSWORD", "storefrontpassword"),
			DB:   getEnv("POSTGRES_DB", "storefront_db"),
		},
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "http://localhost:8090"),
		IdentityBaseURL: getEnv("IDENTITY_BASE_URL", ""),
		SMTP: SMTP{
			Host: getEnv("SMTP_HOST", ""),
			Port: getEnvInt("SMTP_PORT", 1025),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASSWORD", ""),
			From: getEnv("SMTP_FROM", "noreply@storefront.local"),
		},
		ResetLinkBase: getEnv("RESET_LINK_BASE", "http://localhost:3000/auth/reset-password"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
