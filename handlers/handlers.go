package handlers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/bot"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(MessageCreate(b))
	b.Session.AddHandler(ThreadUpdate(b))
	b.Session.AddHandler(ThreadDelete(b))

	// Log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("username", s.State.User.Username).Msg("logged in")
	})
}
