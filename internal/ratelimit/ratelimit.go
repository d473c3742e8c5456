package ratelimit

import (
    "net/http"
    "sync"
    "time"

    "marketdata/internal/httpx"
)

// MinInterval wraps a doer and enforces a minimum time between requests.
// Concurrent callers wait until the interval has elapsed since the last request,
// or return early if the request context is canceled.
type MinInterval struct {
    D        httpx.Doer
    Interval time.Duration
    mu       sync.Mutex
    last     time.Time
}

func (m *MinInterval) Do(req *http.Request) (*http.Response, error) {
    if m.Interval > 0 {
        m.mu.Lock()
        wait := time.Until(m.last.Add(m.Interval))
        m.mu.Unlock()
        if wait > 0 {
            t := time.NewTimer(wait)
            defer t.Stop()
            select {
            case <-req.Context().Done():
                return nil, req.Context().Err()
            case <-t.C:
            }
        }
    }
    res, err := m.D.Do(req)
    if m.Interval > 0 {
        m.mu.Lock()
        m.last = time.Now()
        m.mu.Unlock()
    }
    return res, err
}

// Wrap picks a limiter for d: a token bucket when rpm > 0, otherwise a
// minimum interval when interval > 0, otherwise d unchanged.
func Wrap(d httpx.Doer, rpm, burst int, interval time.Duration) httpx.Doer {
    if rpm > 0 {
        return &TokenBucketDoer{D: d, TB: PerMinute(rpm, burst)}
    }
    if interval > 0 {
        return &MinInterval{D: d, Interval: interval}
    }
    return d
}
