package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	ClientOrigin   string `mapstructure:"CLIENT_ORIGIN"`
	RatesFile      string `mapstructure:"RATES_FILE"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	SESSenderEmail string `mapstructure:"SES_SENDER_EMAIL"`
	AWSRegion      string `mapstructure:"AWS_REGION"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	err := viper.ReadInConfig()
	if err != nil {
		// A missing .env file is fine; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
