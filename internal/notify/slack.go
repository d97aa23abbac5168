package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// slackClient abstracts the slack.Client methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts digests to a Slack channel via chat.postMessage.
type SlackNotifier struct {
	client  slackClient
	channel string
}

// NewSlackNotifier creates a Slack notifier for the given bot token and channel.
func NewSlackNotifier(token, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// Name identifies the backend.
func (n *SlackNotifier) Name() string { return "slack" }

// Send posts the digest summary to the configured channel.
func (n *SlackNotifier) Send(ctx context.Context, d Digest) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(d.Summary(), false),
	)
	if err != nil {
		return fmt.Errorf("notify: slack post to %s: %w", n.channel, err)
	}
	return nil
}
