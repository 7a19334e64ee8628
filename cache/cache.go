package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"forumguard/models"
)

// DefaultTTL is how long a cached guild config stays fresh.
const DefaultTTL = 5 * time.Minute

// Loader fetches a guild's configuration on a cache miss.
type Loader func(ctx context.Context, guildID string) (*models.GuildConfig, error)

type entry struct {
	config *models.GuildConfig
	expiry time.Time
}

// GuildConfigCache caches guild configurations with a TTL. Configuration
// mutations must call Invalidate so the next lookup sees fresh data.
type GuildConfigCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	load    Loader
}

// New creates a cache backed by the given loader. A non-positive ttl
// falls back to DefaultTTL.
func New(load Loader, ttl time.Duration) *GuildConfigCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GuildConfigCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		load:    load,
	}
}

// Get returns the guild's configuration, loading it on a miss or after
// expiry. An unconfigured guild returns nil and is not cached, matching
// the store's absent-row contract.
func (c *GuildConfigCache) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	c.mu.Lock()
	if e, ok := c.entries[guildID]; ok && time.Now().Before(e.expiry) {
		c.mu.Unlock()
		return e.config, nil
	}
	c.mu.Unlock()

	cfg, err := c.load(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		c.mu.Lock()
		c.entries[guildID] = entry{config: cfg, expiry: time.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return cfg, nil
}

// Invalidate drops a guild's cached configuration so the next Get reloads
// it from the store.
func (c *GuildConfigCache) Invalidate(guildID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[guildID]; ok {
		delete(c.entries, guildID)
		log.Debug().Str("guild_id", guildID).Msg("guild config cache invalidated")
	}
}

// Cleanup evicts expired entries and returns how many were removed. Meant
// to run periodically so stale guilds don't accumulate.
func (c *GuildConfigCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	evicted := 0
	for guildID, e := range c.entries {
		if !now.Before(e.expiry) {
			delete(c.entries, guildID)
			evicted++
		}
	}
	return evicted
}
