package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/notify"
	redisstore "github.com/gosuda/hubreach/internal/store/redis"
	"github.com/gosuda/hubreach/internal/subscriber"
)

// --- mocks ---

type postedMessage struct {
	channelID string
	options   int
}

type mockSlackAPI struct {
	mu      sync.Mutex
	posted  []postedMessage
	postErr error
}

func (m *mockSlackAPI) PostMessageContext(_ context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.postErr != nil {
		return "", "", m.postErr
	}
	m.posted = append(m.posted, postedMessage{channelID: channelID, options: len(options)})
	return channelID, "1700000000.000100", nil
}

func (m *mockSlackAPI) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posted)
}

type mockSource struct {
	subscribeFunc func(ctx context.Context, channels ...string) (<-chan redisstore.Message, func(), error)
}

func (m *mockSource) Subscribe(ctx context.Context, channels ...string) (<-chan redisstore.Message, func(), error) {
	return m.subscribeFunc(ctx, channels...)
}

func event(t *testing.T, typ string) []byte {
	t.Helper()
	raw, err := json.Marshal(subscriber.Event{
		Type:     typ,
		HubID:    2,
		ListType: domain.ListTypeEmail,
		ListID:   uuid.New(),
		At:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return raw
}

// --- Notify ---

func TestNotify(t *testing.T) {
	t.Parallel()

	t.Run("posts to configured channel", func(t *testing.T) {
		t.Parallel()

		api := &mockSlackAPI{}
		n := notify.New(api, "C0LEADS", zerolog.Nop())

		err := n.Notify(t.Context(), subscriber.Event{Type: subscriber.EventSubscriberCreated, HubID: 1})

		require.NoError(t, err)
		require.Len(t, api.posted, 1)
		assert.Equal(t, "C0LEADS", api.posted[0].channelID)
		assert.Equal(t, 2, api.posted[0].options, "text fallback and blocks")
	})

	t.Run("post failure is wrapped", func(t *testing.T) {
		t.Parallel()

		api := &mockSlackAPI{postErr: errors.New("channel_not_found")}
		n := notify.New(api, "C0LEADS", zerolog.Nop())

		err := n.Notify(t.Context(), subscriber.Event{HubID: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "notify.Notifier.Notify")
		assert.Contains(t, err.Error(), "channel_not_found")
	})
}

// --- Run ---

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("subscribes to every hub and notifies on created events", func(t *testing.T) {
		t.Parallel()

		api := &mockSlackAPI{}
		n := notify.New(api, "C0LEADS", zerolog.Nop())

		msgs := make(chan redisstore.Message, 4)
		cleaned := false
		src := &mockSource{subscribeFunc: func(_ context.Context, channels ...string) (<-chan redisstore.Message, func(), error) {
			assert.ElementsMatch(t, redisstore.AllSubscribersChannels(), channels)
			return msgs, func() { cleaned = true }, nil
		}}

		ch := redisstore.SubscribersChannel(2, domain.ListTypeEmail)
		msgs <- redisstore.Message{Channel: ch, Payload: event(t, subscriber.EventSubscriberCreated)}
		msgs <- redisstore.Message{Channel: ch, Payload: []byte("not json")}
		msgs <- redisstore.Message{Channel: ch, Payload: event(t, "subscriber.other")}
		msgs <- redisstore.Message{Channel: ch, Payload: event(t, subscriber.EventSubscriberCreated)}
		close(msgs)

		require.NoError(t, n.Run(t.Context(), src))
		assert.Equal(t, 2, api.count())
		assert.True(t, cleaned)
	})

	t.Run("post failures do not stop the loop", func(t *testing.T) {
		t.Parallel()

		api := &mockSlackAPI{postErr: errors.New("rate_limited")}
		n := notify.New(api, "C0LEADS", zerolog.Nop())

		msgs := make(chan redisstore.Message, 2)
		msgs <- redisstore.Message{Payload: event(t, subscriber.EventSubscriberCreated)}
		msgs <- redisstore.Message{Payload: event(t, subscriber.EventSubscriberCreated)}
		close(msgs)
		src := &mockSource{subscribeFunc: func(context.Context, ...string) (<-chan redisstore.Message, func(), error) {
			return msgs, func() {}, nil
		}}

		assert.NoError(t, n.Run(t.Context(), src))
	})

	t.Run("subscribe failure returns error", func(t *testing.T) {
		t.Parallel()

		n := notify.New(&mockSlackAPI{}, "C0LEADS", zerolog.Nop())
		src := &mockSource{subscribeFunc: func(context.Context, ...string) (<-chan redisstore.Message, func(), error) {
			return nil, nil, errors.New("connection refused")
		}}

		err := n.Run(t.Context(), src)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "notify.Notifier.Run")
	})
}
