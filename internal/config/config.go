package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	Mail        MailConfig
	Inquiry     InquiryConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	// IdleTimeout is the sliding expiry of a session; carts vanish
	// silently once it elapses.
	IdleTimeout time.Duration
	CookieName  string
}

type MailConfig struct {
	APIKey    string
	SecretKey string
	FromEmail string
	FromName  string
}

type InquiryConfig struct {
	// StaffEmail receives every submitted inquiry.
	StaffEmail   string
	Subject      string
	TemplatePath string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SESSION_IDLE_TIMEOUT", "10m")
	viper.SetDefault("SESSION_COOKIE_NAME", "storefront_session")
	viper.SetDefault("INQUIRY_SUBJECT", "New Inquiry")
	viper.SetDefault("INQUIRY_TEMPLATE_PATH", "templates/inquiry.html")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	idleTimeout, err := time.ParseDuration(getEnvOrViper("SESSION_IDLE_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			IdleTimeout: idleTimeout,
			CookieName:  getEnvOrViper("SESSION_COOKIE_NAME", "storefront_session"),
		},
		Mail: MailConfig{
			APIKey:    getEnvOrViper("MAIL_API_KEY", ""),
			SecretKey: getEnvOrViper("MAIL_SECRET_KEY", ""),
			FromEmail: getEnvOrViper("MAIL_FROM_EMAIL", ""),
			FromName:  getEnvOrViper("MAIL_FROM_NAME", "Storefront"),
		},
		Inquiry: InquiryConfig{
			StaffEmail:   getEnvOrViper("INQUIRY_STAFF_EMAIL", ""),
			Subject:      getEnvOrViper("INQUIRY_SUBJECT", "New Inquiry"),
			TemplatePath: getEnvOrViper("INQUIRY_TEMPLATE_PATH", "templates/inquiry.html"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Mail.APIKey == "" {
		return nil, fmt.Errorf("MAIL_API_KEY is required")
	}
	if cfg.Mail.SecretKey == "" {
		return nil, fmt.Errorf("MAIL_SECRET_KEY is required")
	}
	if cfg.Mail.FromEmail == "" {
		return nil, fmt.Errorf("MAIL_FROM_EMAIL is required")
	}
	if cfg.Inquiry.StaffEmail == "" {
		return nil, fmt.Errorf("INQUIRY_STAFF_EMAIL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
