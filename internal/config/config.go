package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hartpuso/Valencia-City-Online-Report-System/internal/utils"
)

const AppName = "foi-portal"

// Config holds all application configuration.
type Config struct {
	AppPort            string
	DBUrl              string
	UploadFunctionURL  string
	UploadServiceToken string
	AllowedOrigins     []string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	MaxLoginAttempts   int
	AttemptWindow      time.Duration
	LockDuration       time.Duration

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	SeedAdminEmail    string
	SeedAdminPassword string
}

// Constants for time-based configuration defaults.
const (
	DefaultAccessTokenExpiry  = 15 * time.Minute
	DefaultRefreshTokenExpiry = 7 * 24 * time.Hour
	MaxLoginAttempts          = 10
	AttemptWindow             = 5 * time.Minute
	LockDuration              = 10 * time.Minute
)

// LoadConfig reads the environment and returns a *Config. Missing required
// settings are fatal.
func LoadConfig() *Config {
	cfg := &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		DBUrl:              mustEnv("DATABASE_URL"),
		UploadFunctionURL:  getEnv("UPLOAD_FUNCTION_URL", ""),
		UploadServiceToken: getEnv("UPLOAD_SERVICE_TOKEN", ""),
		AccessTokenExpiry:  DefaultAccessTokenExpiry,
		RefreshTokenExpiry: DefaultRefreshTokenExpiry,
		MaxLoginAttempts:   MaxLoginAttempts,
		AttemptWindow:      AttemptWindow,
		LockDuration:       LockDuration,
		SeedAdminEmail:     getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", ""),
	}

	if origins := getEnv("ALLOWED_ORIGINS", "*"); origins == "*" {
		cfg.AllowedOrigins = []string{"*"}
	} else {
		cfg.AllowedOrigins = splitComma(origins)
	}

	priv, pub := loadRSAKeyPair(mustEnv("JWT_PRIVATE_KEY_B64"))
	cfg.RSAPrivateKey = priv
	cfg.RSAPublicKey = pub

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s is required but not set", key)
	}
	return v
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// loadRSAKeyPair decodes a base64-wrapped PEM private key and derives the
// public half used for token verification.
func loadRSAKeyPair(b64 string) (*rsa.PrivateKey, *rsa.PublicKey) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		utils.Logger.Fatalf("JWT_PRIVATE_KEY_B64 is not valid base64: %v", err)
	}

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		utils.Logger.Fatal("JWT_PRIVATE_KEY_B64 does not contain a PEM block")
	}

	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		// Fall back to PKCS8, which is what most key generators emit now.
		key, pkcs8Err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
		if pkcs8Err != nil {
			utils.Logger.Fatalf("Failed to parse RSA private key: %v", err)
		}
		priv = key
	}
	return priv, &priv.PublicKey
}
