package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CUknot/realtime_chat/config"
	"github.com/CUknot/realtime_chat/models"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	cachePrefix      = "chat:"
	roomListCacheKey = "rooms:list"
	roomCacheKeyBase = "room:"
)

// Cache is a JSON key/value cache with per-entry TTL.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// RedisCache stores entries in Redis under a fixed prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisCache{client: client, prefix: cachePrefix}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedStore puts a cache-aside layer in front of room reads.
// Messages always go to the backing store.
type CachedStore struct {
	Store
	cache   Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewCachedStore wraps store with cache.
func NewCachedStore(store Store, cache Cache, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: store, cache: cache, ttl: ttl}
}

func roomCacheKey(id string) string {
	return roomCacheKeyBase + id
}

func (s *CachedStore) CreateRoom(ctx context.Context, name string, description *string) (*models.Room, error) {
	room, err := s.Store.CreateRoom(ctx, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, roomListCacheKey); err != nil {
		log.Printf("[cache] Warning: failed to invalidate room list: %v", err)
	}
	if err := s.cache.Set(ctx, roomCacheKey(room.ID), room, s.ttl); err != nil {
		log.Printf("[cache] Warning: failed to cache room %s: %v", room.ID, err)
	}
	return room, nil
}

func (s *CachedStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	var cached []models.Room
	found, err := s.cache.Get(ctx, roomListCacheKey, &cached)
	if err != nil {
		log.Printf("[cache] Cache error for room list: %v", err)
	}
	if found {
		return cached, nil
	}

	// The shared load outlives any single caller's cancellation.
	sfCtx := context.WithoutCancel(ctx)
	val, err, _ := s.sfGroup.Do(roomListCacheKey, func() (any, error) {
		rooms, err := s.Store.ListRooms(sfCtx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(sfCtx, roomListCacheKey, rooms, s.ttl); err != nil {
			log.Printf("[cache] Warning: failed to cache room list: %v", err)
		}
		return rooms, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]models.Room), nil
}

func (s *CachedStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	key := roomCacheKey(id)

	var cached models.Room
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[cache] Cache error for room %s: %v", id, err)
	}
	if found {
		return &cached, nil
	}

	sfCtx := context.WithoutCancel(ctx)
	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		room, err := s.Store.GetRoom(sfCtx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(sfCtx, key, room, s.ttl); err != nil {
			log.Printf("[cache] Warning: failed to cache room %s: %v", id, err)
		}
		return room, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*models.Room), nil
}

func (s *CachedStore) Close() error {
	cacheErr := s.cache.Close()
	if err := s.Store.Close(); err != nil {
		return err
	}
	return cacheErr
}
