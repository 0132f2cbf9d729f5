package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"tablebot/models"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Chat platform webhook secret (HMAC signature verification).
	ChannelSecret string `mapstructure:"CHANNEL_SECRET"`

	// Redis configuration (conversation state).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisStateDB  int    `mapstructure:"REDIS_STATE_DB"`

	// Reservation business rules.
	StoreOpenTime      string `mapstructure:"STORE_OPEN_TIME"`  // "10:00"
	StoreCloseTime     string `mapstructure:"STORE_CLOSE_TIME"` // "22:00"
	IntervalMinutes    int    `mapstructure:"RESERVATION_INTERVAL_MINUTES"`
	MaxPerSlot         int    `mapstructure:"MAX_RESERVATIONS_PER_SLOT"`
	MinLeadTimeMinutes int    `mapstructure:"MIN_LEAD_TIME_MINUTES"`
	PartySizeMin       int    `mapstructure:"PARTY_SIZE_MIN"`
	PartySizeMax       int    `mapstructure:"PARTY_SIZE_MAX"`
	DialogTTLMinutes   int    `mapstructure:"DIALOG_TTL_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CHANNEL_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_STATE_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STORE_OPEN_TIME", "10:00")
	viper.SetDefault("STORE_CLOSE_TIME", "22:00")
	viper.SetDefault("RESERVATION_INTERVAL_MINUTES", 30)
	viper.SetDefault("MAX_RESERVATIONS_PER_SLOT", 2)
	viper.SetDefault("MIN_LEAD_TIME_MINUTES", 30)
	viper.SetDefault("PARTY_SIZE_MIN", 1)
	viper.SetDefault("PARTY_SIZE_MAX", 10)
	viper.SetDefault("DIALOG_TTL_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// Policy builds the immutable booking policy from the loaded configuration.
func (c Config) Policy() (models.BookingPolicy, error) {
	open, err := parseClock(c.StoreOpenTime)
	if err != nil {
		return models.BookingPolicy{}, fmt.Errorf("STORE_OPEN_TIME: %w", err)
	}
	closeAt, err := parseClock(c.StoreCloseTime)
	if err != nil {
		return models.BookingPolicy{}, fmt.Errorf("STORE_CLOSE_TIME: %w", err)
	}
	policy := models.BookingPolicy{
		OpenMinute:      open,
		CloseMinute:     closeAt,
		IntervalMinutes: c.IntervalMinutes,
		MaxPerSlot:      c.MaxPerSlot,
		MinLeadMinutes:  c.MinLeadTimeMinutes,
		PartySizeMin:    c.PartySizeMin,
		PartySizeMax:    c.PartySizeMax,
	}
	if err := policy.Validate(); err != nil {
		return models.BookingPolicy{}, err
	}
	return policy, nil
}

// DialogTTL returns how long an idle dialog is kept before it aborts.
func (c Config) DialogTTL() time.Duration {
	return time.Duration(c.DialogTTLMinutes) * time.Minute
}

// parseClock converts a "HH:MM" wall-clock string to minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid wall-clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
