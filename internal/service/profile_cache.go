package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"president-insights/internal/domain"
)

// ProfileCache guarda el ultimo perfil calculado por handle.
type ProfileCache interface {
	Get(ctx context.Context, handle string) (domain.PoliticianProfile, bool, error)
	Set(ctx context.Context, profile domain.PoliticianProfile, ttl time.Duration) error
}

type cacheEntry struct {
	profile   domain.PoliticianProfile
	expiresAt time.Time
}

type memoryProfileCache struct {
	mu    sync.Mutex
	items map[string]cacheEntry
}

func NewMemoryProfileCache() ProfileCache {
	return &memoryProfileCache{
		items: make(map[string]cacheEntry),
	}
}

func (c *memoryProfileCache) Get(_ context.Context, handle string) (domain.PoliticianProfile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(handle)
	entry, ok := c.items[key]
	if !ok {
		return domain.PoliticianProfile{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, key)
		return domain.PoliticianProfile{}, false, nil
	}
	return entry.profile, true, nil
}

func (c *memoryProfileCache) Set(_ context.Context, profile domain.PoliticianProfile, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(profile.Handle)
	if key == "" {
		return nil
	}
	c.items[key] = cacheEntry{profile: profile, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisProfileCache struct {
	client redisKV
	prefix string
}

func NewRedisProfileCache(client *redis.Client) ProfileCache {
	if client == nil {
		return nil
	}
	return &redisProfileCache{
		client: client,
		prefix: "insights:profile:",
	}
}

func (c *redisProfileCache) Get(ctx context.Context, handle string) (domain.PoliticianProfile, bool, error) {
	key := cacheKey(handle)
	if key == "" {
		return domain.PoliticianProfile{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PoliticianProfile{}, false, nil
	}
	if err != nil {
		return domain.PoliticianProfile{}, false, err
	}

	var profile domain.PoliticianProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return domain.PoliticianProfile{}, false, err
	}
	return profile, true, nil
}

func (c *redisProfileCache) Set(ctx context.Context, profile domain.PoliticianProfile, ttl time.Duration) error {
	key := cacheKey(profile.Handle)
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, payload, ttl).Err()
}

// Los handles de Twitter no distinguen mayusculas.
func cacheKey(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}
