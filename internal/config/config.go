// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Storage     StorageConfig
	Commission  CommissionConfig
	Offers      OffersConfig
	JWT         JWTConfig
	Admin       AdminConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type StorageConfig struct {
	Driver        string // "memory" or "sqlite"
	Path          string
	MaxBytes      int64
	RetentionDays int
	ActionLogCap  int
	HistoryCap    int
	LogLevel      string
}

type CommissionConfig struct {
	BuyerRate     decimal.Decimal
	SellerRate    decimal.Decimal
	DonationRate  decimal.Decimal
	GasFee        decimal.Decimal
	DisplayPlaces int
}

type OffersConfig struct {
	DefaultExpiryHours int
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

type AdminConfig struct {
	Username     string
	PasswordHash string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "sqlite"),
			Path:          getEnv("STORAGE_PATH", "./marketplace.db"),
			MaxBytes:      int64(getEnvAsInt("STORAGE_MAX_BYTES", 5*1024*1024)),
			RetentionDays: getEnvAsInt("STORAGE_RETENTION_DAYS", 90),
			ActionLogCap:  getEnvAsInt("STORAGE_ACTION_LOG_CAP", 500),
			HistoryCap:    getEnvAsInt("STORAGE_HISTORY_CAP", 200),
			LogLevel:      getEnv("STORAGE_LOG_LEVEL", "silent"),
		},
		Commission: CommissionConfig{
			BuyerRate:     getEnvAsDecimal("COMMISSION_BUYER_RATE", "0.03"),
			SellerRate:    getEnvAsDecimal("COMMISSION_SELLER_RATE", "0.03"),
			DonationRate:  getEnvAsDecimal("COMMISSION_DONATION_RATE", "0.01"),
			GasFee:        getEnvAsDecimal("COMMISSION_GAS_FEE", "0.00001"),
			DisplayPlaces: getEnvAsInt("COMMISSION_DISPLAY_PLACES", 5),
		},
		Offers: OffersConfig{
			DefaultExpiryHours: getEnvAsInt("OFFER_DEFAULT_EXPIRY_HOURS", 168), // 7 days
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
	}

	// Development convenience: hash a plaintext password when no hash is
	// provided.
	if config.Admin.PasswordHash == "" {
		if plain := getEnv("ADMIN_PASSWORD", ""); plain != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash admin password: %w", err)
			}
			config.Admin.PasswordHash = string(hash)
		}
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWT.SecretKey == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT secret key must be changed in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("admin password is required in production")
		}
	}

	if c.Storage.Driver != "memory" && c.Storage.Driver != "sqlite" {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	for name, rate := range map[string]decimal.Decimal{
		"buyer":    c.Commission.BuyerRate,
		"seller":   c.Commission.SellerRate,
		"donation": c.Commission.DonationRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s commission rate must be between 0 and 1", name)
		}
	}
	if c.Commission.GasFee.IsNegative() {
		return fmt.Errorf("gas fee must not be negative")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(defaultValue)
}
