package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultKeyPrefix namespaces all cache keys in Redis to avoid collisions.
	defaultKeyPrefix = "a7cache:"

	redisOpTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache shares fetched pages between runs and between machines.
//
// Requires Redis 7.4+ or Valkey 8+ for per-field hash TTL (HPEXPIRE).
//
// Two keys hold the whole cache:
//
//   - {prefix}pages - a Hash of serialized responses (field = request key).
//     Each field expires on its own through HPEXPIRE.
//   - {prefix}lru   - a Sorted Set of request keys scored by last access in µs.
//
// Get (read + touch) and Set (write + evict) run as Lua scripts so each is atomic.
type redisCache struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	dataKey string
	lruKey  string
}

// getAndTouch returns the stored value and refreshes its LRU score.
//
// KEYS[1] = data hash, KEYS[2] = LRU sorted set
// ARGV[1] = current µs timestamp, ARGV[2] = member
var getAndTouch = redis.NewScript(`
local val = redis.call('HGET', KEYS[1], ARGV[2])
if val then
    redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
end
return val
`)

// setAndEvict stores a value with its TTL, updates the LRU score and pops the
// oldest members while the set is over capacity. Members whose field already
// expired are cleaned up on the way.
//
// KEYS[1] = data hash, KEYS[2] = LRU sorted set
// ARGV[1] = value, ARGV[2] = current µs timestamp, ARGV[3] = member,
// ARGV[4] = maxSize, ARGV[5] = TTL in milliseconds
//
// Returns the evicted members.
var setAndEvict = redis.NewScript(`
local member  = ARGV[3]
local maxSize = tonumber(ARGV[4])
local ttlMs   = tonumber(ARGV[5])

redis.call('HSET', KEYS[1], member, ARGV[1])
redis.call('HPEXPIRE', KEYS[1], ttlMs, 'FIELDS', 1, member)
redis.call('ZADD', KEYS[2], ARGV[2], member)

local size = redis.call('ZCARD', KEYS[2])
local evicted = {}
while size > maxSize do
    local oldest = redis.call('ZPOPMIN', KEYS[2], 1)
    if #oldest == 0 then break end
    local oldMember = oldest[1]
    redis.call('HDEL', KEYS[1], oldMember)
    table.insert(evicted, oldMember)
    size = size - 1
end

return evicted
`)

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	size := cfg.Size
	if size <= 0 {
		size = defaultSize
	}
	return &redisCache{
		client:  client,
		ttl:     cfg.TTL,
		maxSize: size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		dataKey: prefix + "pages",
		lruKey:  prefix + "lru",
	}, nil
}

func (r *redisCache) keys() []string {
	return []string{r.dataKey, r.lruKey}
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	result, err := getAndTouch.Run(ctx, r.client, r.keys(), now, key).Text()
	if err != nil {
		// redis.Nil is a plain miss
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return []byte(result), true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMicro(), 10)
	maxSize := strconv.Itoa(r.maxSize)
	ttlMs := strconv.FormatInt(r.ttl.Milliseconds(), 10)

	evicted, err := setAndEvict.Run(ctx, r.client, r.keys(),
		value, now, key, maxSize, ttlMs,
	).StringSlice()
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}

	if r.onEvict == nil {
		return
	}
	// Evicted values are not read back; callers only get the key.
	for _, evictedKey := range evicted {
		r.onEvict(evictedKey, nil)
	}
}

func (r *redisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, r.dataKey, key)
		pipe.ZRem(ctx, r.lruKey, key)
		return nil
	})
	if err != nil {
		r.logError("redis cache Delete failed", err)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.HExists(ctx, r.dataKey, key).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
	}
	return err == nil && n
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.HLen(ctx, r.dataKey).Result()
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
