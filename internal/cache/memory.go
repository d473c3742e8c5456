package cache

import (
    "context"
    "sync"
    "time"
)

// entry stores one encoded value with its expiry.
type entry struct {
    expiresAt time.Time
    value     []byte
}

// Memory is the in-process Store. Values are kept as encoded bytes so a
// caller can never mutate what another caller reads.
type Memory struct {
    // MaxItems caps the number of entries; <= 0 means unbounded.
    MaxItems int
    // Now is the clock used for expiry; defaults to time.Now.
    Now func() time.Time

    mu    sync.RWMutex
    items map[string]entry
}

func NewMemory(maxItems int) *Memory {
    return &Memory{MaxItems: maxItems, items: make(map[string]entry)}
}

func (m *Memory) now() time.Time {
    if m.Now != nil { return m.Now() }
    return time.Now()
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
    now := m.now()
    m.mu.RLock()
    e, ok := m.items[key]
    m.mu.RUnlock()
    if !ok || !now.Before(e.expiresAt) {
        return nil, false
    }
    out := make([]byte, len(e.value))
    copy(out, e.value)
    return out, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
    if ttl <= 0 {
        return
    }
    now := m.now()
    stored := make([]byte, len(value))
    copy(stored, value)

    m.mu.Lock()
    defer m.mu.Unlock()
    if m.items == nil { m.items = make(map[string]entry) }
    m.items[key] = entry{expiresAt: now.Add(ttl), value: stored}

    // best-effort cap: remove expired first, then arbitrary keys
    if m.MaxItems > 0 && len(m.items) > m.MaxItems {
        for k, v := range m.items {
            if !now.Before(v.expiresAt) {
                delete(m.items, k)
            }
            if len(m.items) <= m.MaxItems {
                break
            }
        }
        for k := range m.items {
            if len(m.items) <= m.MaxItems { break }
            if k == key { continue }
            delete(m.items, k)
        }
    }
}

func (m *Memory) Remove(_ context.Context, key string) {
    m.mu.Lock()
    delete(m.items, key)
    m.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
    m.mu.RLock()
    defer m.mu.RUnlock()
    return len(m.items)
}
