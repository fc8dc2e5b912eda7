package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AuthMode string

const (
	AuthModeLocal AuthMode = "local"
	AuthModeOIDC  AuthMode = "oidc"
)

// Config is loaded once at startup and passed explicitly to the components
// that need it. Missing required secrets are fatal here, never per-request.
type Config struct {
	ServerPort int
	LogLevel   string

	AuthMode AuthMode

	JWTSecret         []byte
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	OIDCIssuerURL string
	OIDCClientID  string

	IDPDomain       string
	IDPClientID     string
	IDPClientSecret string
	IDPScope        string
	IDPRedirectURI  string

	DatabaseURL string

	KafkaBrokers []string

	SeedCount int
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ServerPort: envIntDefault("SERVER_PORT", 8080),
		LogLevel:   envDefault("LOG_LEVEL", "info"),

		AuthMode: AuthMode(envDefault("AUTH_MODE", string(AuthModeLocal))),

		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		OIDCIssuerURL: os.Getenv("OIDC_ISSUER_URL"),
		OIDCClientID:  os.Getenv("OIDC_CLIENT_ID"),

		IDPDomain:       os.Getenv("IDP_DOMAIN"),
		IDPClientID:     os.Getenv("IDP_CLIENT_ID"),
		IDPClientSecret: os.Getenv("IDP_CLIENT_SECRET"),
		IDPScope:        envDefault("IDP_SCOPE", "resource.read"),
		IDPRedirectURI:  os.Getenv("IDP_REDIRECT_URI"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		KafkaBrokers: csv(os.Getenv("KAFKA_BROKERS")),

		SeedCount: envIntDefault("SEED_COUNT", 900),
	}

	switch cfg.AuthMode {
	case AuthModeLocal:
		MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
		MustNonEmpty(cfg.AdminUsername, "ADMIN_USERNAME")
		if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
			log.Fatalf("missing required env ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
		}
	case AuthModeOIDC:
		MustNonEmpty(cfg.OIDCIssuerURL, "OIDC_ISSUER_URL")
		MustNonEmpty(cfg.OIDCClientID, "OIDC_CLIENT_ID")
	default:
		log.Fatalf("unknown AUTH_MODE %q (want local or oidc)", cfg.AuthMode)
	}

	return cfg
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
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
