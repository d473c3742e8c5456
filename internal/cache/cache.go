// Package cache is the optional key/value layer in front of the upstream
// providers. A miss is always a legal state: implementations swallow their
// own failures and report them as misses.
package cache

import (
    "context"
    "encoding/json"
    "time"

    "github.com/sirupsen/logrus"
)

// Store is the capability shared by the in-process and distributed backends.
// Values are opaque encoded records; callers overwrite with Set, never mutate.
type Store interface {
    // Get returns the stored bytes, or false on miss, expiry, or any failure.
    Get(ctx context.Context, key string) ([]byte, bool)
    // Set is best-effort. A non-positive ttl stores nothing.
    Set(ctx context.Context, key string, value []byte, ttl time.Duration)
    // Remove is best-effort eviction.
    Remove(ctx context.Context, key string)
}

// GetJSON decodes the value stored under key into a T. Decode failures are
// logged and reported as a miss.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
    var v T
    b, ok := s.Get(ctx, key)
    if !ok {
        return v, false
    }
    if err := json.Unmarshal(b, &v); err != nil {
        logrus.WithFields(logrus.Fields{"key": key, "err": err}).Warn("cache: discarding undecodable entry")
        var zero T
        return zero, false
    }
    return v, true
}

// SetJSON encodes v and stores it under key for ttl.
func SetJSON[T any](ctx context.Context, s Store, key string, v T, ttl time.Duration) {
    b, err := json.Marshal(v)
    if err != nil {
        logrus.WithFields(logrus.Fields{"key": key, "err": err}).Warn("cache: value not encodable, skipping write")
        return
    }
    s.Set(ctx, key, b, ttl)
}
