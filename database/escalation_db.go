package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"forumguard/models"
)

// GetEscalationSettings loads a guild's escalation settings. It returns
// nil when the guild has no settings row, which means escalation is
// disabled for that guild.
func (s *Store) GetEscalationSettings(ctx context.Context, guildID string) (*models.EscalationSettings, error) {
	es := &models.EscalationSettings{GuildID: guildID}
	var tier1Role, tier2Role, escalationChannel sql.NullString
	var behavior string

	err := s.db.QueryRowContext(ctx, `
        SELECT tier_1_hours, tier_1_role_id, tier_2_hours, tier_2_role_id,
               escalation_channel_id, enabled, escalation_behavior,
               community_delay_hours, max_thread_age_days
        FROM guild_escalation_settings WHERE guild_id = ?`, guildID,
	).Scan(&es.Tier1Hours, &tier1Role, &es.Tier2Hours, &tier2Role,
		&escalationChannel, &es.Enabled, &behavior,
		&es.CommunityDelayHours, &es.MaxThreadAgeDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query escalation settings for guild %s: %w", guildID, err)
	}

	es.Tier1RoleID = tier1Role.String
	es.Tier2RoleID = tier2Role.String
	es.EscalationChannelID = escalationChannel.String
	es.Behavior = models.Behavior(behavior)
	return es, nil
}

// SetEscalationSettings replaces a guild's escalation settings wholesale.
func (s *Store) SetEscalationSettings(ctx context.Context, es models.EscalationSettings) error {
	if es.Tier1Hours <= 0 || es.Tier2Hours <= es.Tier1Hours {
		return fmt.Errorf("invalid escalation thresholds for guild %s: tier 2 (%dh) must be greater than tier 1 (%dh)",
			es.GuildID, es.Tier2Hours, es.Tier1Hours)
	}
	if es.Behavior == "" {
		es.Behavior = models.BehaviorSupportOnly
	}
	if !es.Behavior.Valid() {
		return fmt.Errorf("unknown escalation behavior %q for guild %s", es.Behavior, es.GuildID)
	}
	if es.CommunityDelayHours < 0 {
		return fmt.Errorf("negative community delay for guild %s", es.GuildID)
	}

	if err := s.EnsureGuild(ctx, es.GuildID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO guild_escalation_settings (
            guild_id, tier_1_hours, tier_1_role_id, tier_2_hours, tier_2_role_id,
            escalation_channel_id, enabled, escalation_behavior,
            community_delay_hours, max_thread_age_days
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		es.GuildID, es.Tier1Hours, es.Tier1RoleID, es.Tier2Hours, es.Tier2RoleID,
		es.EscalationChannelID, es.Enabled, string(es.Behavior),
		es.CommunityDelayHours, es.MaxThreadAgeDays)
	if err != nil {
		return fmt.Errorf("failed to save escalation settings for guild %s: %w", es.GuildID, err)
	}
	return nil
}

// DisableEscalation turns escalation off for a guild while keeping its
// settings row so it can be re-enabled later.
func (s *Store) DisableEscalation(ctx context.Context, guildID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE guild_escalation_settings SET enabled = 0 WHERE guild_id = ?`, guildID)
	if err != nil {
		return fmt.Errorf("failed to disable escalation for guild %s: %w", guildID, err)
	}
	return nil
}

// GetThreadState loads a thread's escalation state. An absent row is
// returned as the zero state with only ThreadID set: a thread no one has
// escalated or recorded activity for yet.
func (s *Store) GetThreadState(ctx context.Context, threadID string) (models.ThreadEscalationState, error) {
	state := models.ThreadEscalationState{ThreadID: threadID}
	var lastCommunity sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
        SELECT guild_id, tier_1_executed, tier_2_executed, last_community_reply_at
        FROM thread_escalation_state WHERE thread_id = ?`, threadID,
	).Scan(&state.GuildID, &state.Tier1Executed, &state.Tier2Executed, &lastCommunity)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to query escalation state for thread %s: %w", threadID, err)
	}

	if lastCommunity.Valid {
		state.LastCommunityReplyAt = time.Unix(lastCommunity.Int64, 0).UTC()
	}
	return state, nil
}

// MarkTierExecuted records that an alert tier fired for a thread. The
// upsert touches only the named tier: marking tier 1 never clears tier 2
// and the other way round, so repeated calls are idempotent.
func (s *Store) MarkTierExecuted(ctx context.Context, threadID, guildID string, tier int) error {
	var query string
	switch tier {
	case 1:
		query = `INSERT INTO thread_escalation_state (thread_id, guild_id, tier_1_executed, tier_2_executed)
                 VALUES (?, ?, 1, 0)
                 ON CONFLICT(thread_id) DO UPDATE SET tier_1_executed = 1`
	case 2:
		query = `INSERT INTO thread_escalation_state (thread_id, guild_id, tier_1_executed, tier_2_executed)
                 VALUES (?, ?, 0, 1)
                 ON CONFLICT(thread_id) DO UPDATE SET tier_2_executed = 1`
	default:
		return fmt.Errorf("invalid escalation tier %d for thread %s", tier, threadID)
	}

	if _, err := s.db.ExecContext(ctx, query, threadID, guildID); err != nil {
		return fmt.Errorf("failed to mark tier %d executed for thread %s: %w", tier, threadID, err)
	}
	return nil
}

// RecordCommunityReply stores when a non-support member last replied in a
// thread. Tier flags are left untouched; under hybrid behavior the sweep
// uses this timestamp to defer escalation.
func (s *Store) RecordCommunityReply(ctx context.Context, threadID, guildID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO thread_escalation_state (thread_id, guild_id, last_community_reply_at)
        VALUES (?, ?, ?)
        ON CONFLICT(thread_id) DO UPDATE SET last_community_reply_at = excluded.last_community_reply_at`,
		threadID, guildID, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to record community reply for thread %s: %w", threadID, err)
	}
	return nil
}

// ResetThreadState deletes a thread's escalation state entirely, clearing
// both tier flags and any recorded activity. Safe to call for a thread
// that has no state.
func (s *Store) ResetThreadState(ctx context.Context, threadID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM thread_escalation_state WHERE thread_id = ?`, threadID)
	if err != nil {
		return fmt.Errorf("failed to reset escalation state for thread %s: %w", threadID, err)
	}
	return nil
}

// ResetGuildThreadStates deletes the escalation state of every thread in
// one guild and reports how many rows were removed.
func (s *Store) ResetGuildThreadStates(ctx context.Context, guildID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM thread_escalation_state WHERE guild_id = ?`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset escalation states for guild %s: %w", guildID, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count reset escalation states for guild %s: %w", guildID, err)
	}
	return count, nil
}
