package notify

import (
	"fmt"
	"time"

	slacklib "github.com/slack-go/slack"

	"github.com/gosuda/hubreach/internal/domain"
	"github.com/gosuda/hubreach/internal/subscriber"
)

// SubscriberSummary is the plain-text fallback shown in push notifications.
func SubscriberSummary(ev subscriber.Event) string {
	return fmt.Sprintf("New %s subscriber on hub %d", listLabel(ev.ListType), ev.HubID)
}

// BuildSubscriberBlocks builds Slack Block Kit blocks for a subscriber event.
func BuildSubscriberBlocks(ev subscriber.Event) []slacklib.Block {
	text := fmt.Sprintf("*New %s subscriber*\n*Hub:* %d\n*List:* `%s`", listLabel(ev.ListType), ev.HubID, ev.ListID)
	section := slacklib.NewSectionBlock(
		slacklib.NewTextBlockObject(slacklib.MarkdownType, text, false, false),
		nil,
		nil,
	)

	if ev.At.IsZero() {
		return []slacklib.Block{section}
	}

	when := slacklib.NewContextBlock("",
		slacklib.NewTextBlockObject(slacklib.PlainTextType, ev.At.UTC().Format(time.RFC1123), false, false),
	)

	return []slacklib.Block{section, when}
}

func listLabel(t domain.ListType) string {
	if t == domain.ListTypeSms {
		return "SMS"
	}
	return string(t)
}
