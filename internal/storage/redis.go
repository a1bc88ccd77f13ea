package storage

import (
	"context"
	"errors"
	"ratingd/internal/structures"

	"github.com/redis/go-redis/v9"
)

// incrScript drops a value INCRBY would reject so a malformed counter
// restarts from zero, matching the other backends.
const incrScript = `
local cur = redis.call("GET", KEYS[1])
if cur and not string.match(cur, "^%-?%d+$") then
  redis.call("DEL", KEYS[1])
end
return redis.call("INCRBY", KEYS[1], ARGV[1])
`

// RedisStore keeps ledger keys as plain redis strings without expiry.
type RedisStore struct {
	client *redis.Client
	incr   *redis.Script
}

func NewRedisStore(conf structures.RedisConfig) *RedisStore {
	return NewRedisStoreFromClient(redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	}))
}

func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, incr: redis.NewScript(incrScript)}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return wrapErr("ping", "", r.client.Ping(ctx).Err())
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapErr("get", key, err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return wrapErr("set", key, r.client.Set(ctx, key, value, 0).Err())
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return wrapErr("remove", key, r.client.Del(ctx, key).Err())
}

// Incr is atomic on the server. A non-numeric existing value counts as zero.
func (r *RedisStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	n, err := r.incr.Run(ctx, r.client, []string{key}, delta).Int64()
	if err != nil {
		return 0, wrapErr("incr", key, err)
	}
	return n, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
