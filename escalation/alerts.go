package escalation

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"forumguard/models"
	"forumguard/utils"
)

// sendTier1Alert pings the tier-1 role inside the thread itself. The
// caller persists the tier flag only after this returns nil.
func (sw *Sweeper) sendTier1Alert(thread *discordgo.Channel, createdAt time.Time, settings models.EscalationSettings) error {
	role, err := sw.platform.Role(thread.GuildID, settings.Tier1RoleID)
	if err != nil {
		return fmt.Errorf("failed to resolve tier-1 role %s: %w", settings.Tier1RoleID, err)
	}
	if role == nil {
		return fmt.Errorf("tier-1 role %s no longer exists in guild %s", settings.Tier1RoleID, thread.GuildID)
	}

	embed := utils.Tier1AlertEmbed(thread, createdAt, settings)
	// Mentions inside embeds don't notify; the ping goes in the content.
	if err := sw.platform.SendEmbed(thread.ID, role.Mention(), embed); err != nil {
		return fmt.Errorf("failed to send tier-1 alert to thread %s: %w", thread.ID, err)
	}
	return nil
}

// sendTier2Alert pings the tier-2 role in the guild's escalation channel.
func (sw *Sweeper) sendTier2Alert(thread *discordgo.Channel, createdAt time.Time, settings models.EscalationSettings) error {
	role, err := sw.platform.Role(thread.GuildID, settings.Tier2RoleID)
	if err != nil {
		return fmt.Errorf("failed to resolve tier-2 role %s: %w", settings.Tier2RoleID, err)
	}
	if role == nil {
		return fmt.Errorf("tier-2 role %s no longer exists in guild %s", settings.Tier2RoleID, thread.GuildID)
	}

	channel, err := sw.platform.Channel(settings.EscalationChannelID)
	if err != nil {
		return fmt.Errorf("failed to resolve escalation channel %s: %w", settings.EscalationChannelID, err)
	}

	embed := utils.Tier2AlertEmbed(thread, createdAt, settings)
	if err := sw.platform.SendEmbed(channel.ID, role.Mention(), embed); err != nil {
		return fmt.Errorf("failed to send tier-2 alert for thread %s: %w", thread.ID, err)
	}
	return nil
}
