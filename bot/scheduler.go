package bot

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var c *cron.Cron

// startScheduler starts the cron jobs: the escalation sweep and the
// config cache janitor.
func startScheduler(b *Bot) {
	log.Info().Msg("initializing scheduler")
	c = cron.New()

	schedule := viper.GetString("bot.sweepSchedule")
	if schedule == "" {
		schedule = "@hourly" // Default cadence
	}
	_, err := c.AddFunc(schedule, func() {
		b.Sweeper.Run(context.Background())
	})
	if err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("could not set up escalation sweep job")
	}

	_, err = c.AddFunc("@every 10m", func() {
		if evicted := b.Configs.Cleanup(); evicted > 0 {
			log.Debug().Int("evicted", evicted).Msg("expired guild configs evicted")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up cache cleanup job")
	}

	c.Start()
	log.Info().Str("schedule", schedule).Msg("escalation sweep scheduled")

	// Optionally sweep right away instead of waiting for the first tick.
	if viper.GetBool("bot.sweepAtStartup") {
		go func() {
			log.Info().Msg("performing initial escalation sweep")
			b.Sweeper.Run(context.Background())
		}()
	}
}

// stopScheduler stops the cron jobs, waiting for a running sweep to
// finish.
func stopScheduler() {
	if c != nil {
		<-c.Stop().Done()
		log.Info().Msg("scheduler stopped")
	}
}
