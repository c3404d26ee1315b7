// Package publish mirrors the merged feed snapshot into redis, so other consumers can read it
// without going through the http api.
package publish

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"

	"github.com/umputun/plaidfeed/pkg/config"
	"github.com/umputun/plaidfeed/pkg/domain"
)

// Redis publishes snapshots as a sorted set of item ids scored by weight, plus a hash
// of item payloads keyed by id
type Redis struct {
	rdb *redis.Client
	key string
}

// NewRedis makes a publisher from configuration, returns nil if redis address is not set
func NewRedis(cfg config.RedisConfig) *Redis {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Redis{rdb: rdb, key: cfg.Key}
}

// itemsKey returns the hash key holding item payloads
func (r *Redis) itemsKey() string {
	return r.key + ":items"
}

// Publish replaces the stored snapshot atomically, readers see either the old or the new one
func (r *Redis) Publish(ctx context.Context, snapshot []domain.WeighedItem) error {
	if r == nil {
		return nil
	}

	members := make([]redis.Z, 0, len(snapshot))
	payloads := make(map[string]any, len(snapshot))
	for _, it := range snapshot {
		b, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("marshal item %s: %w", it.ID, err)
		}
		members = append(members, redis.Z{Score: it.Weight, Member: it.ID})
		payloads[it.ID] = b
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key, r.itemsKey())
		if len(members) == 0 {
			return nil
		}
		pipe.ZAdd(ctx, r.key, members...)
		pipe.HSet(ctx, r.itemsKey(), payloads)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish snapshot to %s: %w", r.key, err)
	}
	log.Printf("[DEBUG] published %d items to redis %s", len(snapshot), r.key)
	return nil
}

// Ping checks redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.rdb.Ping(ctx).Err()
}

// Close closes redis client
func (r *Redis) Close() error {
	if r == nil {
		return nil
	}
	return r.rdb.Close()
}
