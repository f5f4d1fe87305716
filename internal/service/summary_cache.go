package service

import (
	"context"
	"encoding/json"
	"time"

	"fernledger/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	summaryCacheKey = "cache:summary"
	summaryCacheTTL = 30 * time.Second
)

// SummaryCache is a short-TTL read cache for the portfolio summary. Every
// ledger write invalidates it, so readers see at most summaryCacheTTL of
// staleness after a missed invalidation. A nil client disables caching
// (unit test mode).
type SummaryCache struct {
	rdb *redis.Client
}

func NewSummaryCache(rdb *redis.Client) *SummaryCache { return &SummaryCache{rdb: rdb} }

func (c *SummaryCache) Get(ctx context.Context) (*dto.SummaryResponse, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var s dto.SummaryResponse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *SummaryCache) Set(ctx context.Context, s *dto.SummaryResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryCacheKey, raw, summaryCacheTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("summary cache: set failed")
	}
}

func (c *SummaryCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, summaryCacheKey).Err(); err != nil {
		log.Debug().Err(err).Msg("summary cache: invalidate failed")
	}
}
