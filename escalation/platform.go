package escalation

import (
	"github.com/bwmarrin/discordgo"
)

// Platform is the slice of the chat platform the escalation engine needs.
// The bot satisfies it with a discordgo session wrapper; tests supply
// fakes.
type Platform interface {
	// GuildIDs lists the guilds the bot is currently a member of.
	GuildIDs() []string
	// Channel resolves a channel or thread by ID.
	Channel(channelID string) (*discordgo.Channel, error)
	// ActiveThreads lists a guild's active (non-archived) threads.
	ActiveThreads(guildID string) ([]*discordgo.Channel, error)
	// ChannelMessages returns up to limit messages older than beforeID,
	// newest first. An empty beforeID starts from the newest message.
	ChannelMessages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error)
	// MemberRoles returns the role IDs a guild member currently holds.
	MemberRoles(guildID, userID string) ([]string, error)
	// Role resolves a role by ID. A deleted role returns nil without an
	// error; errors mean the lookup itself failed.
	Role(guildID, roleID string) (*discordgo.Role, error)
	// SendEmbed posts content with an embed into a channel or thread.
	SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error
}

// NewSessionPlatform wraps a discordgo session as a Platform. Reads go
// through the state cache first and fall back to the REST API.
func NewSessionPlatform(s *discordgo.Session) Platform {
	return &sessionPlatform{s: s}
}

type sessionPlatform struct {
	s *discordgo.Session
}

func (p *sessionPlatform) GuildIDs() []string {
	// Gateway events mutate the guild list concurrently.
	p.s.State.RLock()
	defer p.s.State.RUnlock()

	ids := make([]string, 0, len(p.s.State.Guilds))
	for _, guild := range p.s.State.Guilds {
		ids = append(ids, guild.ID)
	}
	return ids
}

func (p *sessionPlatform) Channel(channelID string) (*discordgo.Channel, error) {
	if ch, err := p.s.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return p.s.Channel(channelID)
}

func (p *sessionPlatform) ActiveThreads(guildID string) ([]*discordgo.Channel, error) {
	list, err := p.s.GuildThreadsActive(guildID)
	if err != nil {
		return nil, err
	}
	return list.Threads, nil
}

func (p *sessionPlatform) ChannelMessages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	return p.s.ChannelMessages(channelID, limit, beforeID, "", "")
}

func (p *sessionPlatform) MemberRoles(guildID, userID string) ([]string, error) {
	if member, err := p.s.State.Member(guildID, userID); err == nil {
		return member.Roles, nil
	}
	member, err := p.s.GuildMember(guildID, userID)
	if err != nil {
		return nil, err
	}
	return member.Roles, nil
}

func (p *sessionPlatform) Role(guildID, roleID string) (*discordgo.Role, error) {
	if role, err := p.s.State.Role(guildID, roleID); err == nil {
		return role, nil
	}
	roles, err := p.s.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, nil
}

func (p *sessionPlatform) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := p.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embed:   embed,
	})
	return err
}
