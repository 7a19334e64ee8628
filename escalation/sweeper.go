package escalation

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"forumguard/database"
	"forumguard/models"
)

// Sweeper runs the periodic escalation check: every monitored thread in
// every guild is classified and, when stale and unanswered, alerted on.
type Sweeper struct {
	platform Platform
	store    *database.Store

	mu sync.Mutex // held for the duration of one sweep
}

// NewSweeper creates a sweeper over the given platform and store.
func NewSweeper(platform Platform, store *database.Store) *Sweeper {
	return &Sweeper{platform: platform, store: store}
}

// Run executes one full sweep. If a previous sweep is still in flight the
// new one is skipped rather than run concurrently, so two ticks never
// race on the same thread's state.
func (sw *Sweeper) Run(ctx context.Context) {
	if !sw.mu.TryLock() {
		log.Warn().Msg("escalation sweep still running, skipping tick")
		return
	}
	defer sw.mu.Unlock()

	start := time.Now()
	swept := 0
	for _, guildID := range sw.platform.GuildIDs() {
		if sw.sweepGuild(ctx, guildID, start) {
			swept++
		}
	}
	log.Info().Int("guilds", swept).Dur("elapsed", time.Since(start)).Msg("escalation sweep finished")
}

// sweepGuild checks one guild's monitored threads. Any failure is logged
// and confined to this guild so the rest of the sweep continues. Returns
// whether the guild was actually swept.
func (sw *Sweeper) sweepGuild(ctx context.Context, guildID string, now time.Time) bool {
	settings, err := sw.store.GetEscalationSettings(ctx, guildID)
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("failed to load escalation settings")
		return false
	}
	if settings == nil || !settings.Enabled {
		return false
	}

	cfg, err := sw.store.GetGuildConfig(ctx, guildID)
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("failed to load guild config")
		return false
	}
	if cfg == nil || len(cfg.MonitoredChannels) == 0 {
		return false
	}

	forums := sw.monitoredForums(cfg)
	if len(forums) == 0 {
		return false
	}

	threads, err := sw.platform.ActiveThreads(guildID)
	if err != nil {
		log.Error().Err(err).Str("guild_id", guildID).Msg("failed to list active threads")
		return false
	}

	members := NewMemberRoleCache(sw.platform, guildID)
	for _, thread := range threads {
		if !forums[thread.ParentID] {
			continue
		}
		if thread.ThreadMetadata != nil && (thread.ThreadMetadata.Archived || thread.ThreadMetadata.Locked) {
			continue
		}
		sw.checkThread(ctx, thread, cfg, *settings, members, now)
	}
	return true
}

// monitoredForums filters the configured channel set down to channels
// that still exist and are forums.
func (sw *Sweeper) monitoredForums(cfg *models.GuildConfig) map[string]bool {
	forums := make(map[string]bool)
	for _, channelID := range cfg.MonitoredChannels {
		ch, err := sw.platform.Channel(channelID)
		if err != nil {
			log.Warn().Err(err).Str("channel_id", channelID).Msg("skipping unresolvable monitored channel")
			continue
		}
		if ch.Type != discordgo.ChannelTypeGuildForum {
			continue
		}
		forums[channelID] = true
	}
	return forums
}

// checkThread classifies one thread and fires whichever tier is due. The
// tier flag is persisted only after the alert sends successfully; a
// failed send leaves the flag unset so the next tick retries. A crash
// between send and persist can therefore repeat one alert, never lose
// one.
func (sw *Sweeper) checkThread(ctx context.Context, thread *discordgo.Channel, cfg *models.GuildConfig, settings models.EscalationSettings, members *MemberRoleCache, now time.Time) {
	createdAt, err := discordgo.SnowflakeTimestamp(thread.ID)
	if err != nil {
		log.Warn().Err(err).Str("thread_id", thread.ID).Msg("cannot parse thread creation time")
		return
	}
	age := now.Sub(createdAt)

	if maxAge := settings.MaxThreadAge(); maxAge > 0 && age > maxAge {
		return
	}
	// Below the tier-1 threshold nothing can fire, so skip the history
	// fetch, which is the expensive part of the sweep.
	if age < settings.Tier1Threshold() {
		return
	}

	state, err := sw.store.GetThreadState(ctx, thread.ID)
	if err != nil {
		log.Error().Err(err).Str("thread_id", thread.ID).Msg("failed to load escalation state")
		return
	}
	if state.Stage() == models.StageTier2 {
		return
	}

	report := Classify(sw.platform, thread, cfg.SupportRoles, members)
	if Suppressed(report, state, settings) {
		return
	}

	switch Evaluate(age, Holdoff(report, state, settings, createdAt), state, settings) {
	case ActionFireTier1:
		log.Info().Str("guild_id", thread.GuildID).Str("thread_id", thread.ID).
			Float64("age_hours", age.Hours()).Msg("escalating thread to tier 1")
		if err := sw.sendTier1Alert(thread, createdAt, settings); err != nil {
			log.Error().Err(err).Str("thread_id", thread.ID).Msg("tier-1 alert failed, will retry next tick")
			return
		}
		if err := sw.store.MarkTierExecuted(ctx, thread.ID, thread.GuildID, 1); err != nil {
			log.Error().Err(err).Str("thread_id", thread.ID).Msg("failed to persist tier-1 flag")
		}
	case ActionFireTier2:
		log.Info().Str("guild_id", thread.GuildID).Str("thread_id", thread.ID).
			Float64("age_hours", age.Hours()).Msg("escalating thread to tier 2")
		if err := sw.sendTier2Alert(thread, createdAt, settings); err != nil {
			log.Error().Err(err).Str("thread_id", thread.ID).Msg("tier-2 alert failed, will retry next tick")
			return
		}
		if err := sw.store.MarkTierExecuted(ctx, thread.ID, thread.GuildID, 2); err != nil {
			log.Error().Err(err).Str("thread_id", thread.ID).Msg("failed to persist tier-2 flag")
		}
	}
}
