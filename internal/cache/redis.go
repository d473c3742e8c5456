package cache

import (
    "context"
    "errors"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/sirupsen/logrus"
)

// Redis is the distributed Store backed by go-redis.
type Redis struct {
    client redis.Cmdable
    prefix string
}

// NewRedis wraps client. prefix is prepended to every key so several
// deployments can share one database.
func NewRedis(client redis.Cmdable, prefix string) *Redis {
    return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
    b, err := r.client.Get(ctx, r.key(key)).Bytes()
    if err != nil {
        if !errors.Is(err, redis.Nil) {
            logrus.WithFields(logrus.Fields{"key": key, "err": err}).Warn("cache: redis get failed, treating as miss")
        }
        return nil, false
    }
    return b, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
    if ttl <= 0 {
        return
    }
    if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
        logrus.WithFields(logrus.Fields{"key": key, "err": err}).Warn("cache: redis set failed")
    }
}

func (r *Redis) Remove(ctx context.Context, key string) {
    if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
        logrus.WithFields(logrus.Fields{"key": key, "err": err}).Warn("cache: redis del failed")
    }
}

// Ping reports whether the backend is reachable.
func (r *Redis) Ping(ctx context.Context) error {
    return r.client.Ping(ctx).Err()
}
