package models

// GuildConfig holds the moderation configuration for a single guild:
// which forum channels are monitored and which roles count as support.
type GuildConfig struct {
	GuildID                string
	DMNotificationsEnabled bool
	MonitoredChannels      []string
	SupportRoles           []string
}

// Monitors reports whether the given channel is in the guild's
// monitored-channel set. Safe to call on a nil config.
func (c *GuildConfig) Monitors(channelID string) bool {
	if c == nil {
		return false
	}
	for _, id := range c.MonitoredChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
