package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PigFarmBot_Go/internal/command"
)

const (
	// commandTimeout bounds one dispatch; Discord allows 15 minutes after a deferral
	commandTimeout = 30 * time.Second

	// maxEmbedDescription is Discord's embed description limit
	maxEmbedDescription = 4096
)

var adminPermissions int64 = discordgo.PermissionAdministrator

// BuildCommands converts the chat command table into slash command definitions.
func BuildCommands(cmds []command.Command) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		ac := &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
		}
		if c.Admin {
			ac.DefaultMemberPermissions = &adminPermissions
		}
		for _, a := range c.Args {
			ac.Options = append(ac.Options, &discordgo.ApplicationCommandOption{
				Type:        optionType(a.Kind),
				Name:        a.Name,
				Description: a.Description,
				Required:    a.Required,
			})
		}
		out = append(out, ac)
	}
	return out
}

func optionType(kind command.ArgKind) discordgo.ApplicationCommandOptionType {
	if kind == command.ArgInteger {
		return discordgo.ApplicationCommandOptionInteger
	}
	return discordgo.ApplicationCommandOptionString
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits
func (b *Bot) RegisterCommands(forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands, "guild_id", b.GuildID)

	desiredCmds := BuildCommands(b.dispatcher.Commands())

	if !forceUpdate {
		existingCmds, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
		if err != nil {
			return fmt.Errorf("failed to fetch existing commands: %w", err)
		}
		if commandsEqual(existingCmds, desiredCmds) {
			slog.Info(LogMsgCommandsUnchanged, "count", len(existingCmds))
			return nil
		}
		slog.Info(LogMsgCommandsChanged,
			"existing", len(existingCmds),
			"desired", len(desiredCmds))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info(LogMsgCommandsUpdated, "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	return a.Type == b.Type && a.Name == b.Name && a.Description == b.Description && a.Required == b.Required
}

// handleCommand defers the interaction, runs the command and edits the
// deferred reply with the result.
func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := getInteractionUser(i)
	if user == nil {
		slog.Warn(LogMsgMissingInteractionBy, "interaction_id", i.ID)
		return
	}
	data := i.ApplicationCommandData()
	b.stats.record()

	if !deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	reply, err := b.dispatcher.Dispatch(ctx, user.ID, user.Username, data.Name, commandArgs(b.spec(data.Name), data.Options))
	if err != nil {
		slog.Error(LogMsgDispatchFailed, "command", data.Name, "user_id", user.ID, "error", err)
		sendEmbed(s, i, createEmbed(command.MsgSomethingWrong, ColorError))
		return
	}
	sendEmbed(s, i, createEmbed(reply, ColorReply))
}

// spec looks up the argument layout of a command.
func (b *Bot) spec(name string) []command.Arg {
	for _, c := range b.dispatcher.Commands() {
		if c.Name == name {
			return c.Args
		}
	}
	return nil
}

// commandArgs orders the interaction options positionally. Collection stops
// at the first absent option so later arguments never shift into its place.
func commandArgs(spec []command.Arg, options []*discordgo.ApplicationCommandInteractionDataOption) []string {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, o := range options {
		byName[o.Name] = o
	}

	args := make([]string, 0, len(spec))
	for _, a := range spec {
		o, ok := byName[a.Name]
		if !ok {
			break
		}
		switch o.Type {
		case discordgo.ApplicationCommandOptionInteger:
			args = append(args, strconv.FormatInt(o.IntValue(), 10))
		default:
			args = append(args, o.StringValue())
		}
	}
	return args
}

// getInteractionUser returns the invoking user for guild and DM interactions.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

func createEmbed(description string, color int) *discordgo.MessageEmbed {
	if r := []rune(description); len(r) > maxEmbedDescription {
		description = string(r[:maxEmbedDescription-1]) + "…"
	}
	return &discordgo.MessageEmbed{
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterPigFarm,
		},
	}
}
