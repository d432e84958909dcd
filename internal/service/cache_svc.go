package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	VideoCacheTTL   = 5 * time.Minute
	ChannelCacheTTL = 15 * time.Minute
)

// CacheService provides a Redis cache-aside layer for video detail and
// channel profile lookups.
type CacheService struct {
	rdb *redis.Client

	// Optional hit/miss counters, wired at startup.
	onHit  func()
	onMiss func()
}

// SetCounters installs hit and miss callbacks, typically Prometheus counter
// increments.
func (c *CacheService) SetCounters(onHit, onMiss func()) {
	c.onHit = onHit
	c.onMiss = onMiss
}

func (c *CacheService) countHit() {
	if c.onHit != nil {
		c.onHit()
	}
}

func (c *CacheService) countMiss() {
	if c.onMiss != nil {
		c.onMiss()
	}
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideo retrieves a cached video detail. Returns nil if not cached or the
// cache is disabled. Anonymous viewers share one entry; per-viewer views are
// never cached because their derived fields differ.
func (c *CacheService) GetVideo(ctx context.Context, videoID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err == nil {
		c.countHit()
	}
	return data, err
}

// SetVideo stores a video detail in cache.
func (c *CacheService) SetVideo(ctx context.Context, videoID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache after any mutation that changes
// its detail view (edits, reactions, publish toggles, deletes).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// GetChannel retrieves a cached channel profile. Returns nil if not cached.
func (c *CacheService) GetChannel(ctx context.Context, userName string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, channelKey(userName)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err == nil {
		c.countHit()
	}
	return data, err
}

// SetChannel stores a channel profile in cache.
func (c *CacheService) SetChannel(ctx context.Context, userName string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, channelKey(userName), b, ChannelCacheTTL).Err()
}

// InvalidateChannel removes a channel profile from cache.
func (c *CacheService) InvalidateChannel(ctx context.Context, userName string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, channelKey(userName)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videoKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}

func channelKey(userName string) string {
	return fmt.Sprintf("channel:%s", userName)
}
