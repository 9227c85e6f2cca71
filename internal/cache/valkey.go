package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/brandpulse/internal/clients"
)

const valkeyRetries = 3

// ValkeyStore backs the response cache with Valkey so cached analyses
// survive restarts and are shared between replicas.
type ValkeyStore struct {
	client *clients.ValkeyClient
}

func NewValkeyStore(client *clients.ValkeyClient) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (v *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool) {
	cmd := v.client.Client.B().Get().Key(key).Build()
	res := v.client.DoWithRetry(ctx, cmd, valkeyRetries)
	if res.Error() != nil {
		return nil, false
	}

	value, err := res.AsBytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (v *ValkeyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := v.client.Client.B().Set().Key(key).Value(string(value)).
		Ex(ttl).Build()
	res := v.client.DoWithRetry(ctx, cmd, valkeyRetries)
	if err := res.Error(); err != nil {
		slog.Warn("[ValkeyStore] Failed to cache analysis",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
