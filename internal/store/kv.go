// Package store provides local blob persistence for the GoPanda data layer.
// Each domain store serializes its entire state as a single JSON blob under
// its own key; there is no incremental persistence.
package store

import (
	"context"
	"sync"
)

// KV is the persistence contract consumed by the domain stores: opaque
// key-to-blob storage with best-effort saves. Implementations must be safe
// for concurrent use.
type KV interface {
	// Load returns the blob stored under key, or ok=false when absent.
	Load(ctx context.Context, key string) (blob []byte, ok bool, err error)
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, blob []byte) error
}

// Memory is a map-backed KV used in tests and before host storage is attached.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

// Load implements KV.
func (s *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, true, nil
}

// Save implements KV.
func (s *Memory) Save(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.m[key] = cp
	return nil
}

var _ KV = (*Memory)(nil)
