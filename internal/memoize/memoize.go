// Package memoize implements the structural-hash memoization cache that
// backs evaluation and layout: pure computations keyed by a content-
// addressed hash of their inputs are computed at most once per process,
// with concurrent callers for the same key collapsed onto a single
// in-flight computation (spec.md §5's "evaluation and layout results are
// memoized by structural hash of inputs; the cache is safe for concurrent
// read; a single in-flight computation per key is guaranteed even under
// concurrent callers").
//
// Grounded on internal/concurrency/concurrency.go's mutex-protected pool
// shape (ConcurrencyModule's map+sync.RWMutex registries), generalized
// from named resource pools into a single hash-keyed result cache, and
// built directly on top of golang.org/x/sync/singleflight (teacher
// indirect dep, given a home) for the single-in-flight-computation
// guarantee plus golang.org/x/crypto/blake2b for the structural hash
// itself.
package memoize

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

// Hash is a 256-bit structural hash, stable across runs given the same
// logical input (never seeded from process randomness).
type Hash [32]byte

// Hasher accumulates a structural hash over a sequence of typed writes. It
// mirrors the teacher's builder-style APIs (one call per logical field)
// rather than requiring callers to pre-serialize their own byte strings.
type Hasher struct {
	h   [32]byte
	n   int
	buf []byte
}

// NewHasher starts a hash accumulation rooted at a domain-separation tag,
// so two different call sites hashing the same byte sequence for
// different purposes never collide.
func NewHasher(domain string) *Hasher {
	hr := &Hasher{}
	hr.WriteString(domain)
	return hr
}

func (hr *Hasher) mix(b []byte) {
	sum := blake2b.Sum256(append(hr.h[:], b...))
	hr.h = sum
	hr.n++

	// Retain a length-prefixed, call-boundary-preserving copy of every
	// write alongside the running hash, so Content() can reproduce the
	// exact input sequence for the collision-proof comparison
	// memoize.Cache.Get performs on a hit.
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	hr.buf = append(hr.buf, lenBuf[:]...)
	hr.buf = append(hr.buf, b...)
}

// WriteString mixes a string into the hash.
func (hr *Hasher) WriteString(s string) *Hasher {
	hr.mix([]byte(s))
	return hr
}

// WriteBytes mixes raw bytes into the hash.
func (hr *Hasher) WriteBytes(b []byte) *Hasher {
	hr.mix(b)
	return hr
}

// WriteUint64 mixes a fixed-width integer into the hash.
func (hr *Hasher) WriteUint64(v uint64) *Hasher {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	hr.mix(b[:])
	return hr
}

// WriteFloat64 mixes a float into the hash via its bit pattern, so floats
// with the same bits always hash identically regardless of how they were
// computed (0.0 and -0.0 have different bits and hash differently).
func (hr *Hasher) WriteFloat64(v float64) *Hasher {
	return hr.WriteUint64(math.Float64bits(v))
}

// Sum finalizes the hash.
func (hr *Hasher) Sum() Hash {
	return Hash(hr.h)
}

// Content returns the exact, length-prefixed write sequence this hash was
// accumulated from. memoize.Cache.Get compares it structurally on a hash
// hit, so a (however unlikely) blake2b collision between two different
// inputs never returns the wrong cached value.
func (hr *Hasher) Content() []byte {
	return append([]byte(nil), hr.buf...)
}

// entry pairs a cached value with the exact structural content its hash
// was computed from, so a hit can be verified before being trusted.
type entry[V any] struct {
	content []byte
	value   V
}

// Cache is a thread-safe, hash-keyed memoization table. Get either returns
// a previously computed value or runs compute exactly once across all
// concurrent callers racing for the same key. Collisions between two
// different inputs that happen to hash identically are impossible by
// construction: each hash bucket holds every distinct content seen under
// it, and a hit is only ever returned when the stored content matches the
// query's content byte-for-byte (spec.md §5).
type Cache[V any] struct {
	mu     sync.RWMutex
	stored map[Hash][]entry[V]
	group  singleflight.Group
}

// NewCache creates an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{stored: make(map[Hash][]entry[V])}
}

func (c *Cache[V]) lookupLocked(key Hash, content []byte) (V, bool) {
	for _, e := range c.stored[key] {
		if bytes.Equal(e.content, content) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Get returns the cached value for (key, content), computing it via
// compute if absent. Concurrent calls for the same key share one compute
// invocation; content is the exact structural input the caller hashed
// into key (e.g. Hasher.Content()), compared on every hit.
func (c *Cache[V]) Get(key Hash, content []byte, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	v, ok := c.lookupLocked(key, content)
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	keyStr := string(key[:]) + string(content)
	result, err, _ := c.group.Do(keyStr, func() (interface{}, error) {
		c.mu.RLock()
		v, ok := c.lookupLocked(key, content)
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := compute()
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.stored[key] = append(c.stored[key], entry[V]{content: content, value: v})
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Len reports how many entries are currently cached, for diagnostics.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, es := range c.stored {
		n += len(es)
	}
	return n
}
