package moderation

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"forumguard/models"
)

func TestShouldRemove(t *testing.T) {
	cfg := &models.GuildConfig{
		GuildID:           "g1",
		MonitoredChannels: []string{"forum-1"},
		SupportRoles:      []string{"support-1"},
	}
	thread := &discordgo.Channel{ID: "t1", ParentID: "forum-1", OwnerID: "owner-1"}

	msg := func(authorID string, bot bool, roles ...string) *discordgo.Message {
		m := &discordgo.Message{Author: &discordgo.User{ID: authorID, Bot: bot}}
		if len(roles) > 0 {
			m.Member = &discordgo.Member{Roles: roles}
		}
		return m
	}

	tests := []struct {
		name   string
		cfg    *models.GuildConfig
		thread *discordgo.Channel
		m      *discordgo.Message
		want   bool
	}{
		{"unconfigured guild", nil, thread, msg("user-1", false), false},
		{
			"unmonitored thread",
			cfg,
			&discordgo.Channel{ID: "t2", ParentID: "other", OwnerID: "owner-1"},
			msg("user-1", false),
			false,
		},
		{"bot reply", cfg, thread, msg("bot-1", true), false},
		{"thread owner", cfg, thread, msg("owner-1", false), false},
		{"support member", cfg, thread, msg("helper-1", false, "support-1"), false},
		{"support member among other roles", cfg, thread, msg("helper-1", false, "misc", "support-1"), false},
		{"regular member", cfg, thread, msg("user-1", false), true},
		{"member with unrelated roles", cfg, thread, msg("user-1", false, "misc"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRemove(tt.cfg, tt.thread, tt.m))
		})
	}
}
