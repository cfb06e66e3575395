// Package notify carries reporter notifications and audit events out of
// the relay. The queue transport is a Redis list; audit events go over
// Redis Pub/Sub. Neither path ever carries message content.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"speakup/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Job is the queue envelope. Payload stays opaque to the transport.
type Job struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Dispatcher implements relay.Dispatcher over a Redis list. Enqueue
// returns as soon as the job is on the list; retry and backoff belong to
// the consumer side.
type Dispatcher struct {
	Redis *redis.Client
	Queue string
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{Redis: rdb, Queue: config.NotifyQueueKey}
}

func (d *Dispatcher) Enqueue(ctx context.Context, jobType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(Job{
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return d.Redis.LPush(ctx, d.Queue, body).Err()
}
