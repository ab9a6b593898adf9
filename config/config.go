package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Backend API configuration.
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	APITimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Payment gateway configuration.
	RazorpayKeyID string `mapstructure:"RAZORPAY_KEY_ID"`
	CheckoutAddr  string `mapstructure:"CHECKOUT_ADDR"`

	// Local session persistence.
	SessionFile string `mapstructure:"SESSION_FILE"`
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
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	viper.SetDefault("RAZORPAY_KEY_ID", "")
	viper.SetDefault("CHECKOUT_ADDR", "127.0.0.1:43117")
	viper.SetDefault("SESSION_FILE", ".lawconnect/session.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
