package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	Environment          string
	RunMigrations        bool
	RunSeed              bool
	SeedPassword         string
	MigrationsDir        string
	PromotionStartDate   time.Time
	PromotionMultipliers []decimal.Decimal
	MinPassingPercent    decimal.Decimal
	DefaultTargetPoints  decimal.Decimal
	MaxBodyBytes         int64
}

func Load() (Config, error) {
	cfg := Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		Environment:         getEnv("APP_ENV", "development"),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:             getEnvBool("RUN_SEED", true),
		SeedPassword:        getEnv("SEED_PASSWORD", ""),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "migrations"),
		MinPassingPercent:   getEnvDecimal("MIN_PASSING_PERCENT", decimal.NewFromInt(62)),
		DefaultTargetPoints: getEnvDecimal("DEFAULT_TARGET_POINTS", decimal.NewFromInt(100)),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}

	if raw := os.Getenv("PROMOTION_START_DATE"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return cfg, fmt.Errorf("PROMOTION_START_DATE must be YYYY-MM-DD: %w", err)
		}
		cfg.PromotionStartDate = parsed.UTC()
	}

	multipliers, err := ParseMultipliers(os.Getenv("PROMOTION_MULTIPLIERS"))
	if err != nil {
		return cfg, err
	}
	cfg.PromotionMultipliers = multipliers

	return cfg, nil
}

// ParseMultipliers parses a comma-separated multiplier list such as "2.0,1.8,1.5".
// An empty input yields an empty schedule, which always resolves to 1.0.
func ParseMultipliers(raw string) ([]decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	multipliers := make([]decimal.Decimal, 0, len(parts))
	for _, part := range parts {
		value, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("PROMOTION_MULTIPLIERS entry %q is not a number: %w", part, err)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("PROMOTION_MULTIPLIERS entry %q must not be negative", part)
		}
		multipliers = append(multipliers, value)
	}
	return multipliers, nil
}

func getEnv(key, fallback string) string {
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

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedPassword) == "" {
			return fmt.Errorf("SEED_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MinPassingPercent.IsNegative() || c.MinPassingPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("MIN_PASSING_PERCENT must be between 0 and 100")
	}
	if !c.DefaultTargetPoints.IsPositive() {
		return fmt.Errorf("DEFAULT_TARGET_POINTS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if len(c.PromotionMultipliers) > 0 && c.PromotionStartDate.IsZero() {
		return fmt.Errorf("PROMOTION_START_DATE is required when PROMOTION_MULTIPLIERS is set")
	}
	return nil
}
