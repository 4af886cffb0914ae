package presence

import (
	"context"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Member is one entry of a document's alive roster.
type Member struct {
	AuthorID string
	Name     string
}

// Cache is the collaborator-roster contract a host's websocket layer
// consults; Redis is the only production implementation, mirroring the
// teacher's PresenceCache interface.
type Cache interface {
	Join(ctx context.Context, docID, authorID, name string, ttl time.Duration) error
	AliveMembers(ctx context.Context, docID string) ([]Member, error)
	OpenDocuments(ctx context.Context) ([]string, error)
}

type redisCache struct {
	rdb *redis.Client
}

// NewRedisCache wraps an already-connected redis.Client.
func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

// Join records that authorID is present in docID for ttl, refreshing
// the entry's expiry if already present.
func (c *redisCache) Join(ctx context.Context, docID, authorID, name string, ttl time.Duration) error {
	tx := c.rdb.TxPipeline()
	expireAt := time.Now().Add(ttl).Unix()
	tx.ZAdd(ctx, roomKey(docID), redis.Z{Score: float64(expireAt), Member: authorID})
	tx.HSet(ctx, namesKey(docID), authorID, name)
	_, err := tx.Exec(ctx)
	return err
}

// AliveMembers sweeps expired entries (score <= now) then returns the
// remaining roster with display names, via the teacher's single
// round-trip Lua-script-sweep-then-range pattern.
func (c *redisCache) AliveMembers(ctx context.Context, docID string) ([]Member, error) {
	now := time.Now().Unix()
	sweep := redis.NewScript(`
		local expired = redis.call("ZRANGEBYSCORE", KEYS[1], "-inf", ARGV[1])
		if #expired > 0 then
			redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", ARGV[1])
			redis.call("HDEL", KEYS[2], unpack(expired))
		end
		return #expired
	`)
	if _, err := sweep.Run(ctx, c.rdb, []string{roomKey(docID), namesKey(docID)}, now).Int(); err != nil && err != redis.Nil {
		return nil, err
	}

	aliveIDs, err := c.rdb.ZRangeByScore(ctx, roomKey(docID), &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(now, 10),
		Max: "+inf",
	}).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if len(aliveIDs) == 0 {
		return nil, nil
	}

	names, err := c.rdb.HMGet(ctx, namesKey(docID), aliveIDs...).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	members := make([]Member, len(aliveIDs))
	for i, id := range aliveIDs {
		name := ""
		if i < len(names) && names[i] != nil {
			name, _ = names[i].(string)
		}
		members[i] = Member{AuthorID: id, Name: name}
	}
	return members, nil
}

// OpenDocuments lists every docID with a live roster key.
func (c *redisCache) OpenDocuments(ctx context.Context) ([]string, error) {
	var docs []string
	iter := c.rdb.Scan(ctx, 0, "presence:room:*", 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if strings.Contains(k, ":names:") {
			continue
		}
		if docID := strings.TrimPrefix(k, "presence:room:"); docID != "" {
			docs = append(docs, docID)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
