package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/bot"
	"forumguard/moderation"
	"forumguard/utils"
)

// MessageCreate returns the handler for new messages. In monitored
// threads it enforces the reply policy first; replies that survive then
// feed escalation: a support reply clears the thread's escalation state
// entirely, and an unauthorized reply that could not be deleted is
// recorded as community activity for the sweep.
func MessageCreate(b *bot.Bot) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}

		thread := channelFor(s, m.ChannelID)
		if thread == nil || !thread.IsThread() {
			return
		}

		ctx := context.Background()
		cfg, err := b.Configs.Get(ctx, m.GuildID)
		if err != nil {
			log.Error().Err(err).Str("guild_id", m.GuildID).Msg("failed to load guild config")
			return
		}
		if cfg == nil || !cfg.Monitors(thread.ParentID) {
			return
		}

		if moderation.ShouldRemove(cfg, thread, m.Message) {
			if !moderation.Remove(s, cfg, thread, m.Message) {
				// The reply stays visible, so it still counts as
				// community activity.
				if err := b.Store.RecordCommunityReply(ctx, thread.ID, m.GuildID, m.Timestamp); err != nil {
					log.Error().Err(err).Str("thread_id", thread.ID).Msg("failed to record community reply")
				}
			}
			return
		}

		if m.Author.ID == thread.OwnerID {
			return
		}

		var roles []string
		if m.Member != nil {
			roles = m.Member.Roles
		}
		if utils.HasAnyRole(roles, cfg.SupportRoles) {
			// A support reply restarts the escalation clock completely.
			if err := b.Store.ResetThreadState(ctx, thread.ID); err != nil {
				log.Error().Err(err).Str("thread_id", thread.ID).Msg("failed to reset escalation state")
				return
			}
			log.Debug().Str("thread_id", thread.ID).Msg("support replied, escalation state cleared")
		}
	}
}

// channelFor resolves a channel from the state cache, falling back to
// the REST API.
func channelFor(s *discordgo.Session, channelID string) *discordgo.Channel {
	if ch, err := s.State.Channel(channelID); err == nil {
		return ch
	}
	ch, err := s.Channel(channelID)
	if err != nil {
		log.Debug().Err(err).Str("channel_id", channelID).Msg("could not resolve channel")
		return nil
	}
	return ch
}
