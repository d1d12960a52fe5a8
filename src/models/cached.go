package models

import (
	"context"
	"fmt"
	"time"

	"github.com/zephyrnotes/agent/src/cache"
)

// CachedModel wraps a Model and memoizes Complete calls. Identical requests
// (model, sampling parameters, messages) reuse the previous response without
// re-counting its usage, keeping repeated classification calls cheap.
type CachedModel struct {
	Inner Model
	Cache *cache.LRUCache
}

// NewCachedModel wraps inner with an LRU+TTL response cache.
func NewCachedModel(inner Model, size int, ttl time.Duration) *CachedModel {
	return &CachedModel{Inner: inner, Cache: cache.NewLRUCache(size, ttl)}
}

func requestKey(req Request) string {
	base := fmt.Sprintf("%s|%.4f|%d|%t", req.Model, req.Temperature, req.MaxTokens, req.JSONOnly)
	for _, m := range req.Messages {
		base += "|" + string(m.Role) + ":" + m.Content
	}
	return cache.HashKey(base)
}

func (c *CachedModel) Complete(ctx context.Context, req Request) (Response, error) {
	key := requestKey(req)
	if val, ok := c.Cache.Get(key); ok {
		if resp, ok := val.(Response); ok {
			// Cache hits cost nothing; report zero usage.
			resp.Usage = Usage{}
			return resp, nil
		}
	}

	resp, err := c.Inner.Complete(ctx, req)
	if err != nil {
		return Response{}, err
	}
	c.Cache.Set(key, resp)
	return resp, nil
}

var _ Model = (*CachedModel)(nil)
