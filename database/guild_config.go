package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"forumguard/models"
)

// EnsureGuild creates the config row for a guild if it doesn't exist yet.
func (s *Store) EnsureGuild(ctx context.Context, guildID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO guild_config (guild_id) VALUES (?)`, guildID)
	if err != nil {
		return fmt.Errorf("failed to ensure guild %s exists: %w", guildID, err)
	}
	return nil
}

// GetGuildConfig loads a guild's moderation configuration: monitored forum
// channels, support roles, and the DM-notification toggle. It returns nil
// when the guild has never been configured.
func (s *Store) GetGuildConfig(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	cfg := &models.GuildConfig{GuildID: guildID}

	err := s.db.QueryRowContext(ctx,
		`SELECT dm_notifications_enabled FROM guild_config WHERE guild_id = ?`, guildID,
	).Scan(&cfg.DMNotificationsEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query config for guild %s: %w", guildID, err)
	}

	cfg.MonitoredChannels, err = s.queryGuildIDs(ctx,
		`SELECT channel_id FROM monitored_channels WHERE guild_id = ?`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monitored channels for guild %s: %w", guildID, err)
	}

	cfg.SupportRoles, err = s.queryGuildIDs(ctx,
		`SELECT role_id FROM support_roles WHERE guild_id = ?`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query support roles for guild %s: %w", guildID, err)
	}

	return cfg, nil
}

func (s *Store) queryGuildIDs(ctx context.Context, query, guildID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddMonitoredChannel adds a forum channel to the guild's monitored set.
func (s *Store) AddMonitoredChannel(ctx context.Context, guildID, channelID string) error {
	if err := s.EnsureGuild(ctx, guildID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO monitored_channels (guild_id, channel_id) VALUES (?, ?)`,
		guildID, channelID)
	if err != nil {
		return fmt.Errorf("failed to add monitored channel %s for guild %s: %w", channelID, guildID, err)
	}
	return nil
}

// RemoveMonitoredChannel removes a forum channel from the guild's
// monitored set. Removing a channel that isn't monitored is a no-op.
func (s *Store) RemoveMonitoredChannel(ctx context.Context, guildID, channelID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM monitored_channels WHERE guild_id = ? AND channel_id = ?`,
		guildID, channelID)
	if err != nil {
		return fmt.Errorf("failed to remove monitored channel %s for guild %s: %w", channelID, guildID, err)
	}
	return nil
}

// AddSupportRole adds a role to the guild's support-role set.
func (s *Store) AddSupportRole(ctx context.Context, guildID, roleID string) error {
	if err := s.EnsureGuild(ctx, guildID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO support_roles (guild_id, role_id) VALUES (?, ?)`,
		guildID, roleID)
	if err != nil {
		return fmt.Errorf("failed to add support role %s for guild %s: %w", roleID, guildID, err)
	}
	return nil
}

// RemoveSupportRole removes a role from the guild's support-role set.
func (s *Store) RemoveSupportRole(ctx context.Context, guildID, roleID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM support_roles WHERE guild_id = ? AND role_id = ?`,
		guildID, roleID)
	if err != nil {
		return fmt.Errorf("failed to remove support role %s for guild %s: %w", roleID, guildID, err)
	}
	return nil
}

// SetDMNotifications toggles whether users are DMed when their reply is
// removed from a monitored thread.
func (s *Store) SetDMNotifications(ctx context.Context, guildID string, enabled bool) error {
	if err := s.EnsureGuild(ctx, guildID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE guild_config SET dm_notifications_enabled = ? WHERE guild_id = ?`,
		enabled, guildID)
	if err != nil {
		return fmt.Errorf("failed to set DM notifications for guild %s: %w", guildID, err)
	}
	return nil
}
