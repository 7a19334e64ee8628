package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"forumguard/cache"
	"forumguard/database"
	"forumguard/escalation"
)

// Bot encapsulates the bot's state and the services its handlers need.
type Bot struct {
	Session *discordgo.Session
	Store   *database.Store
	Configs *cache.GuildConfigCache
	Sweeper *escalation.Sweeper
}

// NewBot creates and initializes a new Bot instance on top of an opened
// store.
func NewBot(store *database.Store) (*Bot, error) {
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// Guild members are needed to resolve author roles for the support
	// check.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers

	return &Bot{
		Session: dg,
		Store:   store,
		Configs: cache.New(store.GetGuildConfig, cache.DefaultTTL),
		Sweeper: escalation.NewSweeper(escalation.NewSessionPlatform(dg), store),
	}, nil
}

// Start opens the bot's session, registers handlers, and starts the
// scheduler.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	startScheduler(b)

	log.Info().Msg("bot is now running, press CTRL-C to exit")
	return nil
}

// Stop gracefully stops the scheduler and closes the bot's session.
func (b *Bot) Stop() {
	stopScheduler()
	if b.Session != nil {
		b.Session.Close()
	}
	log.Info().Msg("bot stopped gracefully")
}

// Run is the main entry point for the bot application. It blocks until
// a termination signal arrives.
func Run(store *database.Store, registerHandlers func(*Bot)) {
	b, err := NewBot(store)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing bot")
	}

	if err := b.Start(registerHandlers); err != nil {
		log.Fatal().Err(err).Msg("error starting bot")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
}
