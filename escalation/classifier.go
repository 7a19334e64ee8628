package escalation

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/models"
	"forumguard/utils"
)

const historyPageSize = 100

// ReplyReport summarizes the non-owner, non-bot replies found in a
// thread's history.
type ReplyReport struct {
	HasSupportReply      bool
	LastCommunityReplyAt time.Time
}

// MemberRoleCache memoizes member-role lookups for the duration of one
// guild sweep, so a chatty author costs one lookup instead of one per
// message.
type MemberRoleCache struct {
	platform Platform
	guildID  string
	roles    map[string][]string
}

// NewMemberRoleCache creates an empty role cache for one guild.
func NewMemberRoleCache(platform Platform, guildID string) *MemberRoleCache {
	return &MemberRoleCache{
		platform: platform,
		guildID:  guildID,
		roles:    make(map[string][]string),
	}
}

// rolesOf returns the member's role IDs, or nil when the lookup fails
// (member left the guild, missing permission). Failed lookups are cached
// too so one departed member doesn't trigger a lookup per message.
func (c *MemberRoleCache) rolesOf(userID string) []string {
	if roles, ok := c.roles[userID]; ok {
		return roles
	}
	roles, err := c.platform.MemberRoles(c.guildID, userID)
	if err != nil {
		log.Debug().Err(err).Str("guild_id", c.guildID).Str("user_id", userID).Msg("member role lookup failed")
		roles = nil
	}
	c.roles[userID] = roles
	return roles
}

// Classify walks a thread's entire message history and reports whether a
// support member has ever replied and when the last community reply
// happened. There is no recency cutoff: one support reply at any point in
// the thread's life counts. History read failures classify the thread as
// unanswered so a broken thread escalates rather than stalls.
func Classify(platform Platform, thread *discordgo.Channel, supportRoles []string, members *MemberRoleCache) ReplyReport {
	var report ReplyReport

	beforeID := ""
	for {
		page, err := platform.ChannelMessages(thread.ID, historyPageSize, beforeID)
		if err != nil {
			if utils.IsForbidden(err) {
				log.Warn().Str("thread_id", thread.ID).Msg("missing permission to read thread history, classifying as unanswered")
			} else {
				log.Warn().Err(err).Str("thread_id", thread.ID).Msg("cannot read thread history, classifying as unanswered")
			}
			return report
		}
		if len(page) == 0 {
			return report
		}

		for _, msg := range page {
			if msg.Author == nil || msg.Author.Bot || msg.Author.ID == thread.OwnerID {
				continue
			}
			if utils.HasAnyRole(members.rolesOf(msg.Author.ID), supportRoles) {
				report.HasSupportReply = true
			} else if report.LastCommunityReplyAt.IsZero() {
				// Pages run newest to oldest, so the first community
				// reply seen is the most recent one.
				report.LastCommunityReplyAt = msg.Timestamp
			}
			if report.HasSupportReply && !report.LastCommunityReplyAt.IsZero() {
				return report
			}
		}
		beforeID = page[len(page)-1].ID
	}
}

// Suppressed decides whether the thread's replies block escalation under
// the guild's behavior policy.
func Suppressed(report ReplyReport, state models.ThreadEscalationState, settings models.EscalationSettings) bool {
	switch settings.Behavior {
	case models.BehaviorCommunityFriendly:
		// Any non-owner reply satisfies the thread, including ones only
		// the live listener saw.
		return report.HasSupportReply || !report.LastCommunityReplyAt.IsZero() || !state.LastCommunityReplyAt.IsZero()
	default:
		// support_only and hybrid suppress on support replies alone.
		return report.HasSupportReply
	}
}

// Holdoff returns the minimum thread age before escalation may fire.
// Zero except under hybrid behavior with community activity, where a
// community reply pushes both tiers back until the reply plus the
// configured delay. The listener-recorded timestamp is considered too,
// covering replies that landed after the history fetch.
func Holdoff(report ReplyReport, state models.ThreadEscalationState, settings models.EscalationSettings, createdAt time.Time) time.Duration {
	if settings.Behavior != models.BehaviorHybrid {
		return 0
	}
	last := report.LastCommunityReplyAt
	if state.LastCommunityReplyAt.After(last) {
		last = state.LastCommunityReplyAt
	}
	if last.IsZero() {
		return 0
	}
	return last.Add(settings.CommunityDelay()).Sub(createdAt)
}
