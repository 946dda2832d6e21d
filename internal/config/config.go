package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// DefaultJWTSecret is the development signing key. It is rejected in prod.
const DefaultJWTSecret = "default_jwt_secret"

type Config struct {
	Port        string
	Environment string
	AppURL      string // token issuer
	JWTSecret   string
	DatabaseURL string // empty selects the in-memory store
	TablePrefix string
	CORSOrigins string
	// Logging
	LogDir      string
	LogMaxFiles int
}

// OAuthClient holds the credentials of one OAuth provider
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		AppURL:      getEnv("APP_URL", "http://localhost:3000"),
		JWTSecret:   getEnv("JWT_SECRET", DefaultJWTSecret),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getTablePrefix(env),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
	}
}

// IsProduction reports whether strict settings apply
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

// Validate rejects settings that are only acceptable during development
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.JWTSecret == DefaultJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET is using the default value"))
		}
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required in prod"))
		}
	}
	return errors.Join(errs...)
}

// AllowedOrigins splits CORS_ORIGINS into a trimmed list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// OAuthClient reads <PROVIDER>_CLIENT_ID, <PROVIDER>_CLIENT_SECRET and
// <PROVIDER>_CLIENT_REDIRECT_URI for the named provider
func (c *Config) OAuthClient(provider string) OAuthClient {
	prefix := strings.ToUpper(provider)
	return OAuthClient{
		ClientID:     getEnv(prefix+"_CLIENT_ID", ""),
		ClientSecret: getEnv(prefix+"_CLIENT_SECRET", ""),
		RedirectURI:  getEnv(prefix+"_CLIENT_REDIRECT_URI", ""),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
