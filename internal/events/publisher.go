// Package events carries question catalog changes over Redis Pub/Sub and
// relays them to websocket clients.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

const DefaultChannel = "trivia:questions"

// Publisher sends question events to a Redis channel.
type Publisher struct {
	redis   *redis.Client
	channel string
	now     func() time.Time
}

var _ trivia.EventPublisher = (*Publisher)(nil)

func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{redis: client, channel: channel, now: time.Now}
}

func (p *Publisher) QuestionCreated(ctx context.Context, q trivia.Question) error {
	return p.publish(ctx, ws.TypeQuestionCreated, q)
}

func (p *Publisher) QuestionDeleted(ctx context.Context, q trivia.Question) error {
	return p.publish(ctx, ws.TypeQuestionDeleted, q)
}

func (p *Publisher) publish(ctx context.Context, action string, q trivia.Question) error {
	data, err := encodeEvent(action, q, p.now())
	if err != nil {
		return err
	}
	if err := p.redis.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", action, err)
	}
	return nil
}

func encodeEvent(action string, q trivia.Question, at time.Time) ([]byte, error) {
	return json.Marshal(ws.QuestionEventPayload{
		Action:     action,
		QuestionID: q.ID,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		OccurredAt: at.UTC(),
	})
}
