package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"restofinder/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the configured Redis server.
// It returns nil if Redis is not configured or can't be reached.
func NewRedisClient() *redis.Client {
	if config.REDIS_ADDR == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
		DB:       config.REDIS_DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis at %s not reachable, caching disabled: %v", config.REDIS_ADDR, err)
		_ = client.Close()
		return nil
	}
	return client
}

// New returns a Redis backed cache, or Nop when client is nil
func New(client *redis.Client, ttl time.Duration) Cache {
	if client == nil {
		return Nop{}
	}
	return &Redis{client: client, ttl: ttl}
}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Cache get %s: %v", key, err)
		}
		return false
	}
	if err = json.Unmarshal(data, dest); err != nil {
		log.Printf("Cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (r *Redis) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Cache encode %s: %v", key, err)
		return
	}
	if err = r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Printf("Cache set %s: %v", key, err)
	}
}

func (r *Redis) Generation(ctx context.Context, scope string) int64 {
	gen, err := r.client.Get(ctx, Key("gen", scope)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("Cache generation %s: %v", scope, err)
	}
	return gen
}

func (r *Redis) Bump(ctx context.Context, scope string) {
	if err := r.client.Incr(ctx, Key("gen", scope)).Err(); err != nil {
		log.Printf("Cache bump %s: %v", scope, err)
	}
}
