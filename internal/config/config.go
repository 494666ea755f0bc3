package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all environment-sourced settings. It is loaded once in main
// and passed explicitly to the components that need it; nothing reads viper
// after startup.
type Config struct {
	AppPort     string
	DatabaseURL string
	RabbitMQURL string

	JWTSecret     string
	JWTAlgorithm  string
	TokenLifetime time.Duration
}

// Load reads configuration from environment variables, applying defaults.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ALGORITHM", "HS256")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	viper.AutomaticEnv()

	return Config{
		AppPort:       viper.GetString("APP_PORT"),
		DatabaseURL:   viper.GetString("DATABASE_URL"),
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTAlgorithm:  viper.GetString("JWT_ALGORITHM"),
		TokenLifetime: time.Duration(viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
	}
}
