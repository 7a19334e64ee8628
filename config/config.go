package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file and an optional
// config.yaml. Environment variables override file settings, so the bot
// can run with nothing but BOT_TOKEN exported.
func LoadConfig() {
	// Environment variables first; a missing .env file is fine.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on the environment")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msg("no config.yaml found, using environment variables and defaults")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}
