package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nerdware-developers/pos-backend/internal/config"
	"github.com/nerdware-developers/pos-backend/internal/report"
)

const (
	reportKeyPrefix  = "report:"
	scanBatchSize    = 100
	defaultReportTTL = time.Minute
)

// ReportCache keeps aggregation results warm between snapshot pulls.
// A write to sales or expenses invalidates everything; reports are
// cheap to recompute, so precision at invalidation time is not worth
// the bookkeeping.
type ReportCache interface {
	Get(ctx context.Context, opts report.Options) (*report.Result, bool, error)
	Set(ctx context.Context, opts report.Options, result *report.Result) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func buildReportKey(opts report.Options) string {
	raw := fmt.Sprintf("%s|%s|%s|%d", opts.Period, opts.Date, opts.UserID, opts.TopN)
	sum := sha1.Sum([]byte(raw))
	return reportKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *redisReportCache) Get(ctx context.Context, opts report.Options) (*report.Result, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(opts)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result report.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}
	return &result, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, opts report.Options, result *report.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}
	if err := c.client.Set(ctx, buildReportKey(opts), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, scanBatchSize)
}

func (c *noopReportCache) Get(context.Context, report.Options) (*report.Result, bool, error) {
	return nil, false, nil
}

func (c *noopReportCache) Set(context.Context, report.Options, *report.Result) error {
	return nil
}

func (c *noopReportCache) InvalidateAll(context.Context) error {
	return nil
}
