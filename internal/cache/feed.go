// Package cache holds the feed cache: a single Redis entry with the full,
// author-enriched post list. The entry has no TTL and is dropped on every
// post mutation, so a read after a write always falls through to Postgres.
// A generation counter stops a slow reader from restoring a feed that a
// concurrent mutation already invalidated.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/neubri/threads-clone/internal/domain"
)

const (
	// FeedKey is the fixed key of the cached feed.
	FeedKey = "posts"
	// GenerationKey counts invalidations. A write-back is accepted only if it
	// has not moved since the read that missed.
	GenerationKey = "posts:gen"
)

// NoGeneration marks a read that could not observe the generation.
const NoGeneration int64 = -1

type FeedCache struct {
	client redis.UniversalClient
}

func NewFeedCache(client redis.UniversalClient) *FeedCache {
	return &FeedCache{client: client}
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}

// Get returns the cached feed and the current generation. ok is false on a
// miss. gen is read in the same round trip as the feed and must be handed back
// to Set; it is NoGeneration when Redis could not be read.
func (c *FeedCache) Get(ctx context.Context) (posts []domain.Post, gen int64, ok bool, err error) {
	vals, err := c.client.MGet(ctx, FeedKey, GenerationKey).Result()
	if err != nil {
		return nil, NoGeneration, false, err
	}

	gen, err = parseGeneration(vals[1])
	if err != nil {
		return nil, NoGeneration, false, err
	}

	raw, isString := vals[0].(string)
	if !isString {
		return nil, gen, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, gen, false, fmt.Errorf("decoding cached feed: %w", err)
	}
	return posts, gen, true, nil
}

// setIfGeneration writes the feed only while the generation still equals ARGV[1].
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if (current or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2])
return 1
`)

// Set stores the feed with no expiry, unless an invalidation happened since
// the Get that returned gen. stored reports whether the write went through.
func (c *FeedCache) Set(ctx context.Context, gen int64, posts []domain.Post) (stored bool, err error) {
	if gen == NoGeneration {
		return false, nil
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return false, fmt.Errorf("encoding feed: %w", err)
	}

	n, err := setIfGeneration.Run(ctx, c.client, []string{FeedKey, GenerationKey}, strconv.FormatInt(gen, 10), raw).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate drops the feed and bumps the generation in one transaction, so
// a reader that loaded the store before this call can no longer write back.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, FeedKey)
		pipe.Incr(ctx, GenerationKey)
		return nil
	})
	return err
}

func parseGeneration(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decoding feed generation: %w", err)
	}
	return gen, nil
}
