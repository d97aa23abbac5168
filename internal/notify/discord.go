package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo.Session methods we use, enabling
// test mocks. Sending plain channel messages needs only the REST API, so the
// gateway connection is never opened.
type discordSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts digests to a Discord channel.
type DiscordNotifier struct {
	sess    discordSession
	channel string
}

// NewDiscordNotifier creates a Discord notifier for the given bot token and
// channel id.
func NewDiscordNotifier(token, channel string) (*DiscordNotifier, error) {
	sess, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("notify: discord session: %w", err)
	}
	return &DiscordNotifier{sess: sess, channel: channel}, nil
}

// Name identifies the backend.
func (n *DiscordNotifier) Name() string { return "discord" }

// Send posts the digest summary to the configured channel.
func (n *DiscordNotifier) Send(ctx context.Context, d Digest) error {
	_, err := n.sess.ChannelMessageSend(n.channel, d.Summary(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("notify: discord post to %s: %w", n.channel, err)
	}
	return nil
}
