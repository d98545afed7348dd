package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "vanity:"

// Redis is an optional state backend for users who want the state to
// outlive the machine. Selected by VANITY_REDIS_ADDR.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a backend against the given address.
func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (r *Redis) Get(key string) (string, bool, error) {
	v, err := r.client.Get(context.Background(), redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(key, value string) error {
	return r.client.Set(context.Background(), redisKeyPrefix+key, value, 0).Err()
}

func (r *Redis) DeleteAll(keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = redisKeyPrefix + k
	}
	return r.client.Del(context.Background(), prefixed...).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
