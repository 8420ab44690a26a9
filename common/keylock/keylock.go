// Package keylock provides simple per-key locks with TTLs, used to serialize
// read-modify-write sequences against a single guild's plan.
package keylock

import (
	"sync"
	"time"
)

type bucket struct {
	expires time.Time
	handle  int64
}

// KeyLock is a set of independent locks identified by key. A lock expires on
// its own after its ttl passes, so a crashed or stuck holder cannot wedge a
// key forever.
type KeyLock[K comparable] struct {
	locks map[K]*bucket
	mu    sync.Mutex
	c     int64
}

func NewKeyLock[K comparable]() *KeyLock[K] {
	return &KeyLock[K]{
		locks: make(map[K]*bucket),
	}
}

// Lock attempts to lock the key for the given duration ttl, blocking until it
// succeeds or timeout passes.
//
// If the key cannot be obtained within timeout, Lock returns -1. Otherwise it
// returns a non-negative handle to pass to Unlock. The handle guards against
// unlocking a key whose lock already expired and has since been taken by
// another caller.
func (kl *KeyLock[K]) Lock(key K, timeout time.Duration, ttl time.Duration) (handle int64) {
	started := time.Now()

	for {
		if handle := kl.tryLock(key, ttl); handle != -1 {
			return handle
		}

		if time.Since(started) >= timeout {
			return -1
		}

		time.Sleep(time.Millisecond * 25)
	}
}

func (kl *KeyLock[K]) tryLock(key K, ttl time.Duration) int64 {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := time.Now()
	if b, ok := kl.locks[key]; ok && b != nil && now.Before(b.expires) {
		// held by someone else
		return -1
	}

	kl.c++
	handle := kl.c
	kl.locks[key] = &bucket{
		handle:  handle,
		expires: now.Add(ttl),
	}

	return handle
}

// Unlock releases the key if the caller still holds it.
func (kl *KeyLock[K]) Unlock(key K, handle int64) {
	kl.mu.Lock()
	if b, ok := kl.locks[key]; ok && b != nil && b.handle == handle {
		delete(kl.locks, key)
	}
	kl.mu.Unlock()
}
