// Package redis hosts the optional plan-result cache. Caching lives
// outside the planning core on purpose: the core always recomputes, which
// is what bounds its latency; this wrapper only short-circuits the service
// layer for an unchanged (catalog version, context) pair.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/envutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type PlanCache interface {
	Get(ctx context.Context, catalogVersion string, uc domain.UserContext) (*domain.PathResult, bool)
	Set(ctx context.Context, catalogVersion string, uc domain.UserContext, res *domain.PathResult)
	Close() error
}

type planCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewPlanCacheFromEnv returns (nil, nil) when PLAN_CACHE_ENABLED is false
// or no address is configured; callers treat a nil cache as a pass-through.
func NewPlanCacheFromEnv(log *logger.Logger) (PlanCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if !envutil.Bool("PLAN_CACHE_ENABLED", false) {
		return nil, nil
	}
	addr := envutil.String("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &planCache{
		log: log.With("client", "PlanCache"),
		rdb: rdb,
		ttl: envutil.Duration("PLAN_CACHE_TTL", 5*time.Minute),
	}, nil
}

func (c *planCache) Get(ctx context.Context, catalogVersion string, uc domain.UserContext) (*domain.PathResult, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(catalogVersion, uc)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache get failed", "error", err)
		}
		return nil, false
	}
	var res domain.PathResult
	if err := json.Unmarshal(raw, &res); err != nil {
		c.log.Warn("cache entry corrupt, ignoring", "error", err)
		return nil, false
	}
	return &res, true
}

func (c *planCache) Set(ctx context.Context, catalogVersion string, uc domain.UserContext, res *domain.PathResult) {
	raw, err := json.Marshal(res)
	if err != nil {
		c.log.Warn("cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(catalogVersion, uc), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "error", err)
	}
}

func (c *planCache) Close() error { return c.rdb.Close() }

// cacheKey hashes the canonical JSON of the context; two byte-identical
// contexts against the same catalog version share an entry.
func cacheKey(catalogVersion string, uc domain.UserContext) string {
	raw, _ := json.Marshal(uc)
	sum := sha256.Sum256(raw)
	return "plan:" + catalogVersion + ":" + hex.EncodeToString(sum[:])
}
