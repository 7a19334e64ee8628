package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/bot"
)

// ThreadUpdate returns the handler for the THREAD_UPDATE event. When a
// monitored thread is archived its escalation state is cleared, so a
// later reopen starts from a clean slate.
func ThreadUpdate(b *bot.Bot) func(*discordgo.Session, *discordgo.ThreadUpdate) {
	return func(s *discordgo.Session, t *discordgo.ThreadUpdate) {
		if t.ThreadMetadata == nil || !t.ThreadMetadata.Archived {
			return
		}

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
		log.Debug().Str("thread_id", t.ID).Msg("thread archived, escalation state cleared")
	}
}
