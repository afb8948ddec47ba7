package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// DMNotifier delivers messages as Discord direct messages. Recipients are
// Discord user ids.
type DMNotifier struct {
	session *discordgo.Session

	mu       sync.Mutex
	channels map[string]string
}

// NewDMNotifier creates a notifier on an open session.
func NewDMNotifier(session *discordgo.Session) *DMNotifier {
	return &DMNotifier{session: session, channels: make(map[string]string)}
}

// Deliver opens (or reuses) the DM channel and posts message.
func (n *DMNotifier) Deliver(ctx context.Context, recipient, message string) error {
	channelID, err := n.channel(ctx, recipient)
	if err != nil {
		return err
	}
	if _, err := n.session.ChannelMessageSend(channelID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send direct message to %s: %w", recipient, err)
	}
	return nil
}

func (n *DMNotifier) channel(ctx context.Context, recipient string) (string, error) {
	n.mu.Lock()
	id, ok := n.channels[recipient]
	n.mu.Unlock()
	if ok {
		return id, nil
	}

	ch, err := n.session.UserChannelCreate(recipient, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to open direct message channel for %s: %w", recipient, err)
	}

	n.mu.Lock()
	n.channels[recipient] = ch.ID
	n.mu.Unlock()
	return ch.ID, nil
}
