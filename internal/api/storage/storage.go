package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-smart-travel-planner/internal/types"
)

// PlanStorageKey is the single key a browser's saved plan lives under.
const PlanStorageKey = "smartTravelPlannerSavedPlan"

// Store is a per-client string key-value store. Values are opaque.
// Get returns types.ErrNotFound for a missing key; Delete of a missing key
// is not an error.
type Store interface {
	Get(ctx context.Context, clientID uuid.UUID, key string) (string, error)
	Set(ctx context.Context, clientID uuid.UUID, key, value string) error
	Delete(ctx context.Context, clientID uuid.UUID, key string) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*LimitedStore)(nil)
)

func scopedKey(clientID uuid.UUID, key string) string {
	return clientID.String() + ":" + key
}

// MemoryStore keeps values in process. Entries never expire.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, clientID uuid.UUID, key string) (string, error) {
	v, found := s.cache.Get(scopedKey(clientID, key))
	if !found {
		return "", types.ErrNotFound
	}
	return v.(string), nil
}

func (s *MemoryStore) Set(_ context.Context, clientID uuid.UUID, key, value string) error {
	s.cache.Set(scopedKey(clientID, key), value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, clientID uuid.UUID, key string) error {
	s.cache.Delete(scopedKey(clientID, key))
	return nil
}

// LimitedStore rejects values larger than maxBytes, the way a browser's
// local storage rejects writes past its quota.
type LimitedStore struct {
	next     Store
	maxBytes int
}

func NewLimitedStore(next Store, maxBytes int) *LimitedStore {
	return &LimitedStore{next: next, maxBytes: maxBytes}
}

func (s *LimitedStore) Get(ctx context.Context, clientID uuid.UUID, key string) (string, error) {
	return s.next.Get(ctx, clientID, key)
}

func (s *LimitedStore) Set(ctx context.Context, clientID uuid.UUID, key, value string) error {
	if s.maxBytes > 0 && len(value) > s.maxBytes {
		return fmt.Errorf("%w: value of %d bytes exceeds %d", types.ErrQuotaExceeded, len(value), s.maxBytes)
	}
	return s.next.Set(ctx, clientID, key, value)
}

func (s *LimitedStore) Delete(ctx context.Context, clientID uuid.UUID, key string) error {
	return s.next.Delete(ctx, clientID, key)
}
