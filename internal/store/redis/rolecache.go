// Package redis caches role lookups so capability checks on hot paths do not
// hit PostgreSQL on every request. The cache is read-through with a short TTL
// and explicit invalidation on role changes; PostgreSQL stays the source of
// truth.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/domain"
)

type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RoleCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &RoleCache{client: client, ttl: ttl}, nil
}

func (c *RoleCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.RoleCache.Close: %w", err)
	}
	return nil
}

func roleKey(userID uuid.UUID) string {
	return "role:" + userID.String()
}

// get returns the cached role. The empty string is a valid cached value
// (user exists, no role row), distinct from a miss.
func (c *RoleCache) get(ctx context.Context, userID uuid.UUID) (authz.Role, bool) {
	val, err := c.client.Get(ctx, roleKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return authz.RoleNone, false
	}
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("role cache: get failed")
		return authz.RoleNone, false
	}

	return authz.Role(val), true
}

// set stores the role best-effort; a cache write failure only costs a later
// database lookup.
func (c *RoleCache) set(ctx context.Context, userID uuid.UUID, role authz.Role) {
	if err := c.client.Set(ctx, roleKey(userID), string(role), c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("role cache: set failed")
	}
}

// Invalidate drops the cached role after an assignment change so the new
// role is visible before the TTL expires.
func (c *RoleCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, roleKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("role cache: invalidate failed")
	}
}

// CachedRoles layers the cache over the role assignment store. It satisfies
// the role lookup side of domain.UserRoleRepository consumers that only read.
type CachedRoles struct {
	cache *RoleCache
	repo  domain.UserRoleRepository
}

func NewCachedRoles(cache *RoleCache, repo domain.UserRoleRepository) *CachedRoles {
	return &CachedRoles{cache: cache, repo: repo}
}

// Get resolves the user's current role, consulting the cache first. Database
// errors are not cached.
func (c *CachedRoles) Get(ctx context.Context, userID uuid.UUID) (authz.Role, error) {
	if role, ok := c.cache.get(ctx, userID); ok {
		return role, nil
	}

	role, err := c.repo.Get(ctx, userID)
	if err != nil {
		return authz.RoleNone, err
	}

	c.cache.set(ctx, userID, role)
	return role, nil
}
