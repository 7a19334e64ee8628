package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"forumguard/bot"
	"forumguard/config"
	"forumguard/database"
	"forumguard/handlers"
)

func main() {
	config.LoadConfig()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	level, err := zerolog.ParseLevel(viper.GetString("bot.logLevel"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	dbPath := viper.GetString("bot.databasePath")
	if dbPath == "" {
		dbPath = "data/forumguard.db" // Default location
	}

	store, err := database.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	bot.Run(store, handlers.Register)
}
