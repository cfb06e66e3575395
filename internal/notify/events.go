package notify

import (
	"context"
	"encoding/json"

	"speakup/backend/internal/config"
	"speakup/backend/internal/relay"

	"github.com/redis/go-redis/v9"
)

// AuditPublisher implements relay.AuditEmitter over Redis Pub/Sub so
// logging and audit consumers on other instances see message activity.
type AuditPublisher struct {
	Redis   *redis.Client
	Channel string
}

func NewAuditPublisher(rdb *redis.Client) *AuditPublisher {
	return &AuditPublisher{Redis: rdb, Channel: config.AuditChannel}
}

func (p *AuditPublisher) Emit(ctx context.Context, event relay.MessageEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Redis.Publish(ctx, p.Channel, body).Err()
}
