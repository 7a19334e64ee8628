package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"forumguard/models"
)

const (
	ColorInfo  = 0x3498db // Blue
	ColorWarn  = 0xf1c40f // Yellow
	ColorError = 0xe74c3c // Red
)

// ThreadJumpURL builds the client link to a thread.
func ThreadJumpURL(guildID, threadID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s", guildID, threadID)
}

// Tier1AlertEmbed is the gentle in-thread nudge posted when a thread
// crosses the tier-1 threshold without a support reply.
func Tier1AlertEmbed(thread *discordgo.Channel, createdAt time.Time, settings models.EscalationSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⏰ Thread Needs Attention - Tier 1",
		Description: fmt.Sprintf(
			"This thread has been waiting for a response for **%d hours** without any support team replies.\n\nPlease review and assist if needed.",
			settings.Tier1Hours),
		Color: ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Thread",
				Value: fmt.Sprintf("[%s](%s)", thread.Name, ThreadJumpURL(thread.GuildID, thread.ID)),
			},
			{
				Name:   "Created",
				Value:  fmt.Sprintf("<t:%d>", createdAt.Unix()),
				Inline: true,
			},
			{
				Name:   "Checked",
				Value:  fmt.Sprintf("<t:%d>", time.Now().Unix()),
				Inline: true,
			},
		},
	}
}

// Tier2AlertEmbed is the urgent cross-channel alert posted into the
// guild's escalation channel when a thread crosses the tier-2 threshold.
func Tier2AlertEmbed(thread *discordgo.Channel, createdAt time.Time, settings models.EscalationSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🚨 Thread Escalation - Tier 2",
		Description: fmt.Sprintf(
			"**Urgent:** Thread requires immediate attention!\n\nThis thread has been waiting for **%d hours** without support team responses.",
			settings.Tier2Hours),
		Color: ColorError,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Thread",
				Value: fmt.Sprintf("[%s](%s)", thread.Name, ThreadJumpURL(thread.GuildID, thread.ID)),
			},
			{
				Name:   "Forum",
				Value:  fmt.Sprintf("<#%s>", thread.ParentID),
				Inline: true,
			},
			{
				Name:   "Author",
				Value:  fmt.Sprintf("<@%s>", thread.OwnerID),
				Inline: true,
			},
			{
				Name:   "Created",
				Value:  fmt.Sprintf("<t:%d>", createdAt.Unix()),
				Inline: true,
			},
		},
	}
}

// RemovedReplyEmbed is DMed to a user whose reply was removed from a
// monitored thread.
func RemovedReplyEmbed(threadName, guildName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Message Removed",
		Description: fmt.Sprintf(
			"Your message in the thread `\"%s\"` was automatically removed.\n\n"+
				"In this server, replies in monitored forum posts are restricted to the original poster "+
				"and designated support roles to keep the discussion focused.\n\n"+
				"If you believe this was an error, please contact a server moderator.",
			threadName),
		Color: ColorError,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Server: %s", guildName),
		},
	}
}
