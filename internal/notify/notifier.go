// Package notify tells a Slack channel about subscribers as they are added.
// It consumes the events the subscriber service publishes to Redis, so the
// notifier can run in any process that shares the Redis instance.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	slacklib "github.com/slack-go/slack"

	redisstore "github.com/gosuda/hubreach/internal/store/redis"
	"github.com/gosuda/hubreach/internal/subscriber"
)

// SlackAPI abstracts the subset of the Slack client used by Notifier.
// *slack.Client satisfies it.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// EventSource streams raw event payloads. *redis.PubSub satisfies it.
type EventSource interface {
	Subscribe(ctx context.Context, channels ...string) (<-chan redisstore.Message, func(), error)
}

// Notifier posts one Slack message per subscriber event.
type Notifier struct {
	api       SlackAPI
	channelID string
	logger    zerolog.Logger
}

func New(api SlackAPI, channelID string, logger zerolog.Logger) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		logger:    logger.With().Str("component", "notify").Logger(),
	}
}

// Notify posts ev to the configured channel.
func (n *Notifier) Notify(ctx context.Context, ev subscriber.Event) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channelID,
		slacklib.MsgOptionText(SubscriberSummary(ev), false),
		slacklib.MsgOptionBlocks(BuildSubscriberBlocks(ev)...),
	)
	if err != nil {
		return fmt.Errorf("notify.Notifier.Notify: %w", err)
	}
	return nil
}

// Run listens on every hub's subscriber channels and notifies until ctx is
// done. Undecodable payloads and failed posts are logged and skipped.
func (n *Notifier) Run(ctx context.Context, src EventSource) error {
	msgs, cleanup, err := src.Subscribe(ctx, redisstore.AllSubscribersChannels()...)
	if err != nil {
		return fmt.Errorf("notify.Notifier.Run: %w", err)
	}
	defer cleanup()

	for msg := range msgs {
		var ev subscriber.Event
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			n.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping undecodable event")
			continue
		}
		if ev.Type != subscriber.EventSubscriberCreated {
			continue
		}

		if err := n.Notify(ctx, ev); err != nil {
			n.logger.Error().Err(err).Int("hub_id", int(ev.HubID)).Msg("slack notification failed")
		}
	}

	return nil
}
