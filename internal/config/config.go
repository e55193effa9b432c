package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	URL              string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	StatementTimeout time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

// StorageConfig points at any S3-compatible bucket. When Endpoint is empty and
// AccountID is set, the Cloudflare R2 endpoint for that account is used.
type StorageConfig struct {
	Endpoint        string
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	Region          string
}

type Config struct {
	Port            string
	Debug           bool
	CORSOrigins     string
	RequestTimeout  time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	MaxUploadSize   int64
	Timezone        string

	Database DatabaseConfig
	RedisURL string
	JWT      JWTConfig
	Email    EmailConfig
	Storage  StorageConfig

	OTPTTL   time.Duration
	ResetTTL time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Debug:           getEnvBool("DEBUG", false),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 120),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		MaxUploadSize:   int64(getEnvInt("MAX_UPLOAD_SIZE", 10*1024*1024)),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		OTPTTL:          getEnvDuration("OTP_TTL", 10*time.Minute),
		ResetTTL:        getEnvDuration("RESET_CODE_TTL", 15*time.Minute),
	}

	cfg.Database = DatabaseConfig{
		URL:              os.Getenv("DATABASE_URL"),
		MaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		StatementTimeout: getEnvDuration("DB_STATEMENT_TIMEOUT", 10*time.Second),
	}

	cfg.JWT = JWTConfig{
		Secret: os.Getenv("JWT_SECRET"),
		Issuer: getEnv("JWT_ISSUER", "cramr"),
		TTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),
	}

	cfg.Email = EmailConfig{
		APIKey:      os.Getenv("RESEND_API_KEY"),
		FromAddress: getEnv("EMAIL_FROM_ADDRESS", "no-reply@cramr.app"),
		FromName:    getEnv("EMAIL_FROM_NAME", "Cramr"),
	}

	cfg.Storage = StorageConfig{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Bucket:          os.Getenv("S3_BUCKET"),
		PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		Region:          getEnv("S3_REGION", "auto"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, errors.New("APP_TIMEZONE is not a valid location"))
	}
	return errors.Join(errs...)
}

// Location returns the zone used for calendar-day notification buckets.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
