package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGuildConfigAbsent(t *testing.T) {
	store := openTestStore(t)

	cfg, err := store.GetGuildConfig(context.Background(), "g1")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestGuildConfigRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddMonitoredChannel(ctx, "g1", "c1"))
	require.NoError(t, store.AddMonitoredChannel(ctx, "g1", "c2"))
	require.NoError(t, store.AddSupportRole(ctx, "g1", "r1"))

	cfg, err := store.GetGuildConfig(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "g1", cfg.GuildID)
	assert.True(t, cfg.DMNotificationsEnabled, "DM notifications default to on")
	assert.ElementsMatch(t, []string{"c1", "c2"}, cfg.MonitoredChannels)
	assert.ElementsMatch(t, []string{"r1"}, cfg.SupportRoles)

	assert.True(t, cfg.Monitors("c1"))
	assert.False(t, cfg.Monitors("c9"))
}

func TestAddMonitoredChannelIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddMonitoredChannel(ctx, "g1", "c1"))
	require.NoError(t, store.AddMonitoredChannel(ctx, "g1", "c1"))

	cfg, err := store.GetGuildConfig(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, cfg.MonitoredChannels)
}

func TestRemoveMonitoredChannel(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddMonitoredChannel(ctx, "g1", "c1"))
	require.NoError(t, store.RemoveMonitoredChannel(ctx, "g1", "c1"))

	cfg, err := store.GetGuildConfig(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, cfg.MonitoredChannels)

	// Removing a channel that was never monitored is a no-op.
	require.NoError(t, store.RemoveMonitoredChannel(ctx, "g1", "c9"))
}

func TestRemoveSupportRole(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddSupportRole(ctx, "g1", "r1"))
	require.NoError(t, store.AddSupportRole(ctx, "g1", "r2"))
	require.NoError(t, store.RemoveSupportRole(ctx, "g1", "r1"))

	cfg, err := store.GetGuildConfig(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, cfg.SupportRoles)
}

func TestSetDMNotifications(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetDMNotifications(ctx, "g1", false))

	cfg, err := store.GetGuildConfig(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.False(t, cfg.DMNotificationsEnabled)

	require.NoError(t, store.SetDMNotifications(ctx, "g1", true))

	cfg, err = store.GetGuildConfig(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, cfg.DMNotificationsEnabled)
}
