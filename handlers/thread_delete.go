package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/bot"
)

// ThreadDelete returns the handler for the THREAD_DELETE event. A
// deleted monitored thread has nothing left to escalate, so its state
// row is dropped.
func ThreadDelete(b *bot.Bot) func(*discordgo.Session, *discordgo.ThreadDelete) {
	return func(s *discordgo.Session, t *discordgo.ThreadDelete) {
		ctx := context.Background()
		cfg, err := b.Configs.Get(ctx, t.GuildID)
		if err != nil {
			log.Error().Err(err).Str("guild_id", t.GuildID).Msg("failed to load guild config")
			return
		}
		if cfg == nil || !cfg.Monitors(t.ParentID) {
			return
		}

		if err := b.Store.ResetThreadState(ctx, t.ID); err != nil {
			log.Error().Err(err).Str("thread_id", t.ID).Msg("failed to clear escalation state")
			return
		}
		log.Debug().Str("thread_id", t.ID).Msg("thread deleted, escalation state cleared")
	}
}
