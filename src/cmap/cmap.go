// Package cmap contains a thread-safe sharded map, used by the build
// engine as its per-run index of rule outputs. It trades a little memory
// for reduced contention versus a single global mutex.
package cmap

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultShardCount is a reasonable default shard count for large maps.
const DefaultShardCount = 1 << 6

// HashString hashes a string key using xxhash; a convenient hasher for
// Map instances keyed by rule path or cache digest.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// A Map is a sharded, concurrency-safe map. Construct with New.
type Map[K comparable, V any] struct {
	shards []shard[K, V]
	hasher func(K) uint64
	mask   uint64
}

// New creates a Map with the given shard count (must be a power of 2) and
// hash function.
func New[K comparable, V any](shardCount uint64, hasher func(K) uint64) *Map[K, V] {
	mask := shardCount - 1
	if shardCount&mask != 0 {
		panic(fmt.Sprintf("shard count %d is not a power of 2", shardCount))
	}
	m := &Map[K, V]{
		shards: make([]shard[K, V], shardCount),
		mask:   mask,
		hasher: hasher,
	}
	for i := range m.shards {
		m.shards[i].m = map[K]V{}
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	return &m.shards[m.hasher(key)&m.mask]
}

// Set records val under key, overwriting any previous value.
func (m *Map[K, V]) Set(key K, val V) {
	m.shardFor(key).Set(key, val)
}

// Get returns the value stored under key, if any.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.shardFor(key).Get(key)
}

// Delete removes key from the map, if present.
func (m *Map[K, V]) Delete(key K) {
	m.shardFor(key).Delete(key)
}

// Len returns the total number of entries across all shards.
func (m *Map[K, V]) Len() int {
	n := 0
	for i := range m.shards {
		n += m.shards[i].Len()
	}
	return n
}

type shard[K comparable, V any] struct {
	m map[K]V
	l sync.RWMutex
}

func (s *shard[K, V]) Set(key K, val V) {
	s.l.Lock()
	defer s.l.Unlock()
	s.m[key] = val
}

func (s *shard[K, V]) Get(key K) (V, bool) {
	s.l.RLock()
	defer s.l.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *shard[K, V]) Delete(key K) {
	s.l.Lock()
	defer s.l.Unlock()
	delete(s.m, key)
}

func (s *shard[K, V]) Len() int {
	s.l.RLock()
	defer s.l.RUnlock()
	return len(s.m)
}
