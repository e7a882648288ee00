package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Server     ServerConfig
	RateLimit  RateLimitConfig
	Onboarding OnboardingConfig
	Slack      SlackConfig
	SelfHosted bool
}

// DatabaseConfig holds PostgreSQL connection settings for the hosted backend.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds settings for the subscriber event publisher.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// JWTConfig holds the secret used to verify access tokens issued by the
// hosted backend's auth service.
type JWTConfig struct {
	Secret string //nolint:gosec // G117: JWT verification secret config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// RateLimitConfig bounds request rates. Lead capture is limited per client IP,
// authenticated routes per user.
type RateLimitConfig struct {
	LeadRPS   float64
	LeadBurst int
	APIRPS    float64
	APIBurst  int
}

// OnboardingConfig tunes onboarding state derivation.
type OnboardingConfig struct {
	VerificationRepromptAfter time.Duration
}

// SlackConfig holds the optional new-subscriber notification target.
type SlackConfig struct {
	BotToken  string //nolint:gosec // G117: Slack bot token config
	ChannelID string
}

// Enabled reports whether subscriber notifications should be posted.
func (c *SlackConfig) Enabled() bool {
	return c.BotToken != ""
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production the JWT secret
// and DB password must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("HUBREACH_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("HUBREACH_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisEnabled, err := getEnvBool("HUBREACH_REDIS_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("HUBREACH_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("HUBREACH_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("HUBREACH_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	leadRPS, err := getEnvFloat("HUBREACH_RATE_LEAD_RPS", 2)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	leadBurst, err := getEnvInt("HUBREACH_RATE_LEAD_BURST", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	apiRPS, err := getEnvFloat("HUBREACH_RATE_API_RPS", 50)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	apiBurst, err := getEnvInt("HUBREACH_RATE_API_BURST", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	reprompt, err := getEnvDuration("HUBREACH_VERIFICATION_REPROMPT_AFTER", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	selfHosted, err := getEnvBool("HUBREACH_SELF_HOSTED", false)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("HUBREACH_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("HUBREACH_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("HUBREACH_DB_USER", "postgres"),
			Password: getEnv("HUBREACH_DB_PASSWORD", ""),
			DBName:   getEnv("HUBREACH_DB_NAME", "postgres"),
			SSLMode:  getEnv("HUBREACH_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Enabled:  redisEnabled,
			Addr:     getEnv("HUBREACH_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("HUBREACH_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("HUBREACH_JWT_SECRET", ""),
		},
		Server: ServerConfig{
			Addr:         getEnv("HUBREACH_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		RateLimit: RateLimitConfig{
			LeadRPS:   leadRPS,
			LeadBurst: leadBurst,
			APIRPS:    apiRPS,
			APIBurst:  apiBurst,
		},
		Onboarding: OnboardingConfig{
			VerificationRepromptAfter: reprompt,
		},
		Slack: SlackConfig{
			BotToken:  getEnv("HUBREACH_SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("HUBREACH_SLACK_CHANNEL_ID", ""),
		},
		SelfHosted: selfHosted,
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("HUBREACH_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("HUBREACH_JWT_SECRET must be at least 32 characters")
	}

	if c.Database.SSLMode == "disable" && !c.SelfHosted {
		log.Warn().Msg("HUBREACH_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("HUBREACH_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("HUBREACH_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("HUBREACH_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HUBREACH_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.RateLimit.LeadRPS <= 0 {
		return fmt.Errorf("HUBREACH_RATE_LEAD_RPS must be positive, got %g", c.RateLimit.LeadRPS)
	}
	if c.RateLimit.LeadBurst < 1 {
		return fmt.Errorf("HUBREACH_RATE_LEAD_BURST must be >= 1, got %d", c.RateLimit.LeadBurst)
	}
	if c.RateLimit.APIRPS <= 0 {
		return fmt.Errorf("HUBREACH_RATE_API_RPS must be positive, got %g", c.RateLimit.APIRPS)
	}
	if c.RateLimit.APIBurst < 1 {
		return fmt.Errorf("HUBREACH_RATE_API_BURST must be >= 1, got %d", c.RateLimit.APIBurst)
	}
	if c.Onboarding.VerificationRepromptAfter <= 0 {
		return fmt.Errorf("HUBREACH_VERIFICATION_REPROMPT_AFTER must be positive, got %s", c.Onboarding.VerificationRepromptAfter)
	}

	if c.Slack.Enabled() {
		if c.Slack.ChannelID == "" {
			return errors.New("HUBREACH_SLACK_CHANNEL_ID is required when HUBREACH_SLACK_BOT_TOKEN is set")
		}
		if !c.Redis.Enabled {
			return errors.New("HUBREACH_SLACK_BOT_TOKEN requires HUBREACH_REDIS_ENABLED=true")
		}
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q as bool: %w", key, v, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
