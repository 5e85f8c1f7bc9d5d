package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "orgs:mail"

// RedisQueue stores messages as JSON in a redis list: RPUSH to enqueue and
// BLPOP to dequeue, so several workers can drain the same list.
type RedisQueue struct {
	Client *redis.Client
	Key    string

	// PollTimeout bounds each BLPOP so workers notice shutdown.
	PollTimeout time.Duration
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisQueue{
		Client:      client,
		Key:         key,
		PollTimeout: 5 * time.Second,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mail: encode message: %w", err)
	}

	if err := q.Client.RPush(ctx, q.Key, payload).Err(); err != nil {
		return fmt.Errorf("mail: rpush: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Message, error) {
	result, err := q.Client.BLPop(ctx, q.PollTimeout, q.Key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Message{}, ErrEmpty
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Message{}, ctxErr
		}
		return Message{}, fmt.Errorf("mail: blpop: %w", err)
	}

	// result is [key, value]
	if len(result) != 2 {
		return Message{}, fmt.Errorf("mail: unexpected blpop reply of length %d", len(result))
	}

	var msg Message
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return Message{}, fmt.Errorf("mail: decode message: %w", err)
	}
	return msg, nil
}

// Len is the number of queued messages.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.Client.LLen(ctx, q.Key).Result()
}

// Ping checks the redis connection; used by the readiness check.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.Client.Ping(ctx).Err()
}
