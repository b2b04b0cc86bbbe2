package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/YusovID/campus-prep/pkg/logger/sl"
	"github.com/redis/go-redis/v9"
)

// RedisFanout publishes chat messages on a Redis channel and relays every
// message seen on that channel to the local hub, so all instances behind a
// load balancer deliver to all their clients.
type RedisFanout struct {
	rdb     *redis.Client
	channel string
	hub     *Hub
	log     *slog.Logger
}

func NewRedisFanout(rdb *redis.Client, channel string, hub *Hub, log *slog.Logger) *RedisFanout {
	return &RedisFanout{
		rdb:     rdb,
		channel: channel,
		hub:     hub,
		log:     log,
	}
}

func (f *RedisFanout) Publish(ctx context.Context, msg domain.ChatMessage) error {
	const op = "internal.chat.redis.Publish"

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: failed to encode message: %w", op, err)
	}

	if err := f.rdb.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("%s: failed to publish message: %w", op, err)
	}

	return nil
}

// Subscribe confirms the subscription and returns a function relaying
// messages until ctx is done.
func (f *RedisFanout) Subscribe(ctx context.Context) (func(), error) {
	const op = "internal.chat.redis.Subscribe"
	log := f.log.With(slog.String("op", op), slog.String("channel", f.channel))

	sub := f.rdb.Subscribe(ctx, f.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("%s: failed to subscribe: %w", op, err)
	}

	log.Info("subscribed to chat channel")

	run := func() {
		defer func() {
			if err := sub.Close(); err != nil {
				log.Warn("failed to close subscription", sl.Err(err))
			}
		}()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				f.hub.broadcastRaw([]byte(msg.Payload))
			}
		}
	}

	return run, nil
}
