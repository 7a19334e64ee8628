package escalation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	testGuildID      = "90001"
	testOwnerID      = "90002"
	testSupportRole  = "90010"
	testTier1Role    = "90011"
	testTier2Role    = "90012"
	testForumID      = "90020"
	testAlertChannel = "90021"
)

// snowflakeAt builds a Discord snowflake whose embedded timestamp is t,
// so SnowflakeTimestamp round-trips to t at millisecond precision.
func snowflakeAt(t time.Time) string {
	const discordEpochMS = 1420070400000
	return strconv.FormatInt((t.UnixMilli()-discordEpochMS)<<22, 10)
}

func testMessage(id, authorID string, bot bool, at time.Time) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		Author:    &discordgo.User{ID: authorID, Bot: bot},
		Timestamp: at,
	}
}

type sentAlert struct {
	channelID string
	content   string
	embed     *discordgo.MessageEmbed
}

// fakePlatform backs the escalation engine with in-memory data. Message
// histories are stored newest first, mirroring the real API.
type fakePlatform struct {
	guilds   []string
	channels map[string]*discordgo.Channel
	threads  map[string][]*discordgo.Channel
	messages map[string][]*discordgo.Message
	members  map[string][]string
	roles    map[string]*discordgo.Role

	historyErr   error
	sendErr      error
	sent         []sentAlert
	historyCalls int
	memberCalls  int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		channels: make(map[string]*discordgo.Channel),
		threads:  make(map[string][]*discordgo.Channel),
		messages: make(map[string][]*discordgo.Message),
		members:  make(map[string][]string),
		roles:    make(map[string]*discordgo.Role),
	}
}

func (f *fakePlatform) GuildIDs() []string { return f.guilds }

func (f *fakePlatform) Channel(channelID string) (*discordgo.Channel, error) {
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return ch, nil
}

func (f *fakePlatform) ActiveThreads(guildID string) ([]*discordgo.Channel, error) {
	return f.threads[guildID], nil
}

func (f *fakePlatform) ChannelMessages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	f.historyCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}

	history := f.messages[channelID]
	start := 0
	if beforeID != "" {
		for i, msg := range history {
			if msg.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	if start >= len(history) {
		return nil, nil
	}
	end := start + limit
	if end > len(history) {
		end = len(history)
	}
	return history[start:end], nil
}

func (f *fakePlatform) MemberRoles(guildID, userID string) ([]string, error) {
	f.memberCalls++
	roles, ok := f.members[userID]
	if !ok {
		return nil, fmt.Errorf("unknown member %s", userID)
	}
	return roles, nil
}

func (f *fakePlatform) Role(guildID, roleID string) (*discordgo.Role, error) {
	return f.roles[roleID], nil
}

func (f *fakePlatform) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentAlert{channelID: channelID, content: content, embed: embed})
	return nil
}
