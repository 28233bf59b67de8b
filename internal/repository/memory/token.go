package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/skous2/nails-by-brooke/internal/repository"
)

type tokenStore struct {
	cache *cache.Cache
}

// NewTokenStore keeps revoked token ids in process memory. Used when no
// Redis URL is configured; revocations do not survive a restart.
func NewTokenStore(cleanupInterval time.Duration) repository.TokenStore {
	return &tokenStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *tokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (s *tokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := s.cache.Get(tokenID)
	return found, nil
}
