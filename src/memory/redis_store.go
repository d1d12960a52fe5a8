package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session histories in Redis lists, one key per session.
// RPUSH+LTRIM inside a pipeline keeps appends atomic per session.
type RedisStore struct {
	Client      *redis.Client
	maxMessages int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr string, db, maxMessages int) (*RedisStore, error) {
	if maxMessages <= 0 {
		maxMessages = DefaultWindow
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{Client: client, maxMessages: maxMessages}, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID + ":messages"
}

func (rs *RedisStore) Get(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 || limit > rs.maxMessages {
		limit = rs.maxMessages
	}
	raw, err := rs.Client.LRange(ctx, sessionKey(sessionID), int64(-limit), -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue // skip entries written by incompatible versions
		}
		out = append(out, m)
	}
	return out, nil
}

func (rs *RedisStore) Append(ctx context.Context, sessionID string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := sessionKey(sessionID)
	_, err = rs.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, int64(-rs.maxMessages), -1)
		return nil
	})
	return err
}

func (rs *RedisStore) Reset(ctx context.Context, sessionID string) error {
	return rs.Client.Del(ctx, sessionKey(sessionID)).Err()
}

// Close releases the client.
func (rs *RedisStore) Close() error {
	return rs.Client.Close()
}

var _ Store = (*RedisStore)(nil)
