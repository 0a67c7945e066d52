package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

const memoryMaxEntries = 10000

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Cache, used when no Redis server is configured
type Memory struct {
	entries     cmap.ConcurrentMap[string, memoryEntry]
	generations cmap.ConcurrentMap[string, *atomic.Int64]
	ttl         time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries:     cmap.New[memoryEntry](),
		generations: cmap.New[*atomic.Int64](),
		ttl:         ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string, dest any) bool {
	entry, ok := m.entries.Get(key)
	if !ok {
		return false
	}
	if time.Now().After(entry.expires) {
		m.entries.Remove(key)
		return false
	}
	return json.Unmarshal(entry.data, dest) == nil
}

func (m *Memory) Set(_ context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if m.entries.Count() >= memoryMaxEntries {
		m.sweep()
	}
	m.entries.Set(key, memoryEntry{data: data, expires: time.Now().Add(m.ttl)})
}

// sweep drops expired entries, or everything if that wasn't enough
func (m *Memory) sweep() {
	now := time.Now()
	for _, key := range m.entries.Keys() {
		m.entries.RemoveCb(key, func(_ string, v memoryEntry, exists bool) bool {
			return exists && now.After(v.expires)
		})
	}
	if m.entries.Count() >= memoryMaxEntries {
		m.entries.Clear()
	}
}

func (m *Memory) counter(scope string) *atomic.Int64 {
	return m.generations.Upsert(scope, nil, func(exist bool, valueInMap, _ *atomic.Int64) *atomic.Int64 {
		if exist {
			return valueInMap
		}
		return &atomic.Int64{}
	})
}

func (m *Memory) Generation(_ context.Context, scope string) int64 {
	return m.counter(scope).Load()
}

func (m *Memory) Bump(_ context.Context, scope string) {
	m.counter(scope).Add(1)
}
