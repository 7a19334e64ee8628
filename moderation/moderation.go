package moderation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/models"
	"forumguard/utils"
)

// ShouldRemove applies the reply policy for monitored threads: only the
// thread owner and support-role members may post. Bot messages are
// always left alone.
func ShouldRemove(cfg *models.GuildConfig, thread *discordgo.Channel, m *discordgo.Message) bool {
	if cfg == nil || !cfg.Monitors(thread.ParentID) {
		return false
	}
	if m.Author == nil || m.Author.Bot {
		return false
	}
	if m.Author.ID == thread.OwnerID {
		return false
	}

	var roles []string
	if m.Member != nil {
		roles = m.Member.Roles
	}
	return !utils.HasAnyRole(roles, cfg.SupportRoles)
}

// Remove deletes an unauthorized reply and, when the guild has DM
// notifications enabled, tells the author why. Returns whether the
// message is gone from the thread; false means it could not be deleted
// and is still visible.
func Remove(s *discordgo.Session, cfg *models.GuildConfig, thread *discordgo.Channel, m *discordgo.Message) bool {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		switch {
		case utils.IsForbidden(err):
			log.Error().Str("thread_id", thread.ID).Msg("cannot delete message, missing permissions")
		case utils.IsNotFound(err):
			// Already gone, nothing to do.
			return true
		default:
			log.Error().Err(err).Str("thread_id", thread.ID).Str("message_id", m.ID).Msg("failed to delete message")
		}
		return false
	}

	log.Info().Str("user_id", m.Author.ID).Str("thread_id", thread.ID).Msg("removed unauthorized reply")

	if cfg.DMNotificationsEnabled {
		notifyAuthor(s, thread, m.Author.ID)
	}
	return true
}

func notifyAuthor(s *discordgo.Session, thread *discordgo.Channel, userID string) {
	dm, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("could not open DM channel")
		return
	}

	guildName := thread.GuildID
	if guild, err := s.State.Guild(thread.GuildID); err == nil {
		guildName = guild.Name
	}

	if _, err := s.ChannelMessageSendEmbed(dm.ID, utils.RemovedReplyEmbed(thread.Name, guildName)); err != nil {
		if utils.IsForbidden(err) {
			log.Warn().Str("user_id", userID).Msg("could not DM user, DMs are disabled")
		} else {
			log.Error().Err(err).Str("user_id", userID).Msg("unexpected error sending DM")
		}
	}
}
