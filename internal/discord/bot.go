package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PigFarmBot_Go/internal/command"
)

// Dispatcher runs chat commands on behalf of a player.
type Dispatcher interface {
	Dispatch(ctx context.Context, sender, username, name string, args []string) (string, error)
	Commands() []command.Command
}

// Bot represents the Discord bot
type Bot struct {
	Session    *discordgo.Session
	AppID      string
	GuildID    string
	dispatcher Dispatcher
	stats      *commandStats
}

// Config holds the bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string // empty registers global commands
}

// New creates a new Discord bot
func New(cfg Config, dispatcher Dispatcher) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	return &Bot{
		Session:    s,
		AppID:      cfg.AppID,
		GuildID:    cfg.GuildID,
		dispatcher: dispatcher,
		stats:      &commandStats{started: time.Now()},
	}, nil
}

// Start opens the gateway and makes sure the slash commands are current.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.RegisterCommands(false); err != nil {
		_ = b.Session.Close()
		return err
	}

	slog.Info(LogMsgBotRunning, "commands", len(b.dispatcher.Commands()))
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Notifier returns a notifier that sends direct messages through this bot.
func (b *Bot) Notifier() *DMNotifier {
	return NewDMNotifier(b.Session)
}

func (b *Bot) ready(s *discordgo.Session, _ *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleCommand(s, i)
}
