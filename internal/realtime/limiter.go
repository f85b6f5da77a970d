package realtime

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"campus-placement/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// ConnectLimiter decides whether a client key (usually its IP) may open another socket.
type ConnectLimiter interface {
	Allow(ctx context.Context, key string) bool
}

const connectScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a fixed-window counter shared by every instance. It fails open
// when Redis is unreachable.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewRedisLimiter(client *redis.Client, cfg config.RealtimeConfig, logger *slog.Logger) *RedisLimiter {
	limit, window := windowFor(cfg)
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(connectScript),
		limit:  limit,
		window: window,
		logger: logger,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if key == "" || l.limit <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{"ws:connect:" + key}, l.window.Milliseconds(), l.limit).Int64()
	if err != nil {
		l.logger.Warn("connect limiter unavailable", "error", err)
		return true
	}
	return allowed == 1
}

// windowFor turns a rate/burst pair into an equivalent fixed window.
func windowFor(cfg config.RealtimeConfig) (int, time.Duration) {
	limit := max(cfg.ConnectBurst, 1)
	if cfg.ConnectRate <= 0 {
		return 0, time.Second
	}
	ms := math.Ceil(float64(limit) / cfg.ConnectRate * 1000)
	return limit, time.Duration(ms) * time.Millisecond
}

const localLimiterMaxKeys = 10_000

// LocalLimiter keeps one token bucket per key in process memory.
type LocalLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*localBucket
	now     func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(cfg config.RealtimeConfig) *LocalLimiter {
	return &LocalLimiter{
		limit:   rate.Limit(cfg.ConnectRate),
		burst:   max(cfg.ConnectBurst, 1),
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) bool {
	if key == "" || l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= localLimiterMaxKeys {
			l.evictIdle(now)
		}
		b = &localBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// evictIdle drops buckets that have had time to refill completely.
func (l *LocalLimiter) evictIdle(now time.Time) {
	idle := time.Duration(float64(l.burst)/float64(l.limit)*float64(time.Second)) + time.Second
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(l.buckets, key)
		}
	}
}
