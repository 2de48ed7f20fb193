// Package idempotency guards checkout against double submission. A
// client may send an Idempotency-Key header; replays within the TTL are
// rejected before they reach the assembler.
package idempotency

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ecommerce-app/storefront/pkg/httpx"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Key(scope, clientKey string) string {
	return fmt.Sprintf("idem:%s:%s", scope, clientKey)
}

// Seen claims the key and reports whether it was already claimed.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Middleware rejects repeated requests carrying the same
// Idempotency-Key. Requests without the header pass through; the
// protection is opt-in for clients.
func Middleware(store *Store, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := r.Header.Get("Idempotency-Key")
			if store == nil || clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			seen, err := store.Seen(r.Context(), store.Key(scope, clientKey))
			if err != nil {
				// Dedup is best effort; an unreachable store must not block checkout.
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				httpx.Error(w, http.StatusConflict, "Duplicate request.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
