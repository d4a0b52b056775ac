package credit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// BalanceCache holds recently computed balances for display reads. It is
// never consulted for debit decisions; those always re-derive the balance
// inside the store transaction. A nil client disables the cache.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{client: client, ttl: ttl}
}

func balanceKey(userID uuid.UUID) string {
	return "credits:balance:" + userID.String()
}

// Get returns the cached balance, or ok=false on miss or cache error.
func (c *BalanceCache) Get(ctx context.Context, userID uuid.UUID) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, balanceKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Balance cache read failed")
		}
		return 0, false
	}

	balance, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return balance, true
}

// Set stores the balance for the configured TTL. Errors are logged only;
// the cache is best effort.
func (c *BalanceCache) Set(ctx context.Context, userID uuid.UUID, balance int) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, balanceKey(userID), strconv.Itoa(balance), c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Balance cache write failed")
	}
}

// Invalidate drops the cached balance after a ledger write.
func (c *BalanceCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, balanceKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Msg("Balance cache invalidation failed")
	}
}
