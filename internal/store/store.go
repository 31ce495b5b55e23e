// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package store keeps live drawing sessions keyed by id.
//
// A Store is a sharded LRU: ids are spread over a fixed number of shards,
// each with its own lock and recency list. When a shard is full, putting a
// new id evicts that shard's least recently used entry and hands it to the
// OnEvict callback, which the server uses to close abandoned sessions.
package store

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount must be a power of 2 for shard selection by mask.
	ShardCount = 16

	// DefaultCapacity is the total capacity used when none is given.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Store is a thread-safe sharded LRU keyed by session id.
//
// The capacity is enforced per shard as ceil(capacity / ShardCount), so the
// total can reach that value times ShardCount and a shard can evict before
// the store as a whole is full.
type Store[V any] struct {
	shards        [ShardCount]*shard[V]
	shardCapacity int
	capacity      int
	onEvict       func(id string, v V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	lru     recency
}

type entry[V any] struct {
	value V
	node  *node
}

// Option configures a Store.
type Option[V any] func(*Store[V])

// OnEvict registers a function called for every entry dropped to make
// room. It runs after the shard lock is released and is not called by
// Delete.
func OnEvict[V any](fn func(id string, v V)) Option[V] {
	return func(s *Store[V]) {
		s.onEvict = fn
	}
}

// New creates a store holding about capacity entries.
// If capacity <= 0, DefaultCapacity is used.
func New[V any](capacity int, opts ...Option[V]) *Store[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store[V]{
		capacity:      capacity,
		shardCapacity: (capacity + ShardCount - 1) / ShardCount,
	}
	for i := range s.shards {
		s.shards[i] = &shard[V]{entries: make(map[string]*entry[V])}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// shardIndex picks the shard for id by FNV-1a hash.
func shardIndex(id string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id)) // fnv.Write never returns an error
	return int(h.Sum64() & shardMask)
}

func (s *Store[V]) shardFor(id string) *shard[V] {
	return s.shards[shardIndex(id)]
}

// Get returns the value stored under id and marks it recently used.
func (s *Store[V]) Get(id string) (V, bool) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	e, ok := sh.entries[id]
	if !ok {
		sh.mu.Unlock()
		s.misses.Add(1)
		var zero V
		return zero, false
	}
	sh.lru.touch(e.node)
	v := e.value
	sh.mu.Unlock()

	s.hits.Add(1)
	return v, true
}

// Put stores v under id, replacing any previous value. Replacing does not
// count as an eviction.
func (s *Store[V]) Put(id string, v V) {
	sh := s.shardFor(id)

	type evicted struct {
		id string
		v  V
	}
	var dropped []evicted

	sh.mu.Lock()
	if e, ok := sh.entries[id]; ok {
		e.value = v
		sh.lru.touch(e.node)
		sh.mu.Unlock()
		return
	}
	for sh.lru.len() >= s.shardCapacity {
		old, ok := sh.lru.pop()
		if !ok {
			break
		}
		dropped = append(dropped, evicted{old, sh.entries[old].value})
		delete(sh.entries, old)
	}
	sh.entries[id] = &entry[V]{value: v, node: sh.lru.push(id)}
	sh.mu.Unlock()

	s.evictions.Add(uint64(len(dropped)))
	if s.onEvict != nil {
		for _, d := range dropped {
			s.onEvict(d.id, d.v)
		}
	}
}

// Delete removes id and returns the value it held.
func (s *Store[V]) Delete(id string) (V, bool) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[id]
	if !ok {
		var zero V
		return zero, false
	}
	sh.lru.remove(e.node)
	delete(sh.entries, id)
	return e.value, true
}

// Range calls fn for every entry until fn returns false. Each shard is
// locked while it is visited, so fn must not call back into the store.
func (s *Store[V]) Range(fn func(id string, v V) bool) {
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, e := range sh.entries {
			if !fn(id, e.value) {
				sh.mu.Unlock()
				return
			}
		}
		sh.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (s *Store[V]) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += len(sh.entries)
		sh.mu.Unlock()
	}
	return total
}

// Stats describes store usage.
type Stats struct {
	Len       int     `json:"len"`
	Capacity  int     `json:"capacity"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	Evictions uint64  `json:"evictions"`
}

// Stats returns current store statistics.
func (s *Store[V]) Stats() Stats {
	hits := s.hits.Load()
	misses := s.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       s.Len(),
		Capacity:  s.capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: s.evictions.Load(),
	}
}
