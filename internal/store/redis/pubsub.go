// Package redis carries subscriber events between processes over Redis
// pub/sub.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gosuda/hubreach/internal/domain"
)

// Message is one payload received on a subscribed channel.
type Message struct {
	Channel string
	Payload []byte
}

type PubSub struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &PubSub{client: client}, nil
}

// NewFromClient wraps an existing client. Close still closes the client.
func NewFromClient(client *redis.Client) *PubSub {
	return &PubSub{client: client}
}

func (ps *PubSub) Close() error {
	if err := ps.client.Close(); err != nil {
		return fmt.Errorf("redis.PubSub.Close: %w", err)
	}
	return nil
}

func (ps *PubSub) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := ps.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis.PubSub.Publish: %w", err)
	}
	return nil
}

// Subscribe listens on every named channel until ctx is done or the returned
// cleanup func is called. The message channel is closed when listening stops.
func (ps *PubSub) Subscribe(ctx context.Context, channels ...string) (<-chan Message, func(), error) {
	if len(channels) == 0 {
		return nil, nil, fmt.Errorf("redis.PubSub.Subscribe: %w: no channels", domain.ErrValidation)
	}

	sub := ps.client.Subscribe(ctx, channels...)

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.PubSub.Subscribe: receive confirmation: %w", err)
	}

	out := make(chan Message, 64)
	redisCh := sub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				select {
				case out <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}

	return out, cleanup, nil
}

// SubscribersChannel returns the Redis channel carrying subscriber events for
// one hub and list type.
func SubscribersChannel(hub domain.HubID, listType domain.ListType) string {
	return "hub:" + hub.String() + ":" + string(listType) + "_subscribers"
}

// AllSubscribersChannels lists the subscriber channel of every hub and list
// type.
func AllSubscribersChannels() []string {
	hubs := domain.Hubs()
	out := make([]string, 0, 2*len(hubs))
	for _, hub := range hubs {
		out = append(out,
			SubscribersChannel(hub, domain.ListTypeEmail),
			SubscribersChannel(hub, domain.ListTypeSms),
		)
	}
	return out
}
