package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/farm"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/metrics"
	"github.com/osse101/PigFarmBot_Go/internal/mill"
	"github.com/osse101/PigFarmBot_Go/internal/piglet"
	"github.com/osse101/PigFarmBot_Go/internal/plant"
	"github.com/osse101/PigFarmBot_Go/internal/player"
	"github.com/osse101/PigFarmBot_Go/internal/wallet"
)

// Services are the engine operations commands are routed to.
type Services struct {
	Players player.Service
	Farm    farm.Service
	Piglets piglet.Service
	Mills   mill.Service
	Plants  plant.Service
	Wallets wallet.Service
}

// Options tune rendering.
type Options struct {
	// ReferralLink is a format string with one %s for the player id. When
	// empty the referral reply tells players to share their id instead.
	ReferralLink string
}

// Dispatcher maps chat commands to engine operations and renders the
// result as reply text.
type Dispatcher struct {
	svc      Services
	cat      *catalog.Catalog
	opts     Options
	commands map[string]Command
}

// NewDispatcher builds a dispatcher with every command registered.
func NewDispatcher(svc Services, cat *catalog.Catalog, opts Options) *Dispatcher {
	d := &Dispatcher{
		svc:      svc,
		cat:      cat,
		opts:     opts,
		commands: make(map[string]Command),
	}
	for _, c := range d.table() {
		d.commands[c.Name] = c
	}
	return d
}

// Commands lists the registered commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.commands))
	for _, c := range d.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch runs one command for sender and returns the reply text.
//
// Rejections and malformed arguments are part of the reply, with a nil
// error. An error is returned only when the engine could not complete the
// operation for infrastructure reasons.
func (d *Dispatcher) Dispatch(ctx context.Context, sender, username, name string, args []string) (string, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
	if _, ok := logger.RequestIDFromContext(ctx); !ok {
		ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	}
	ctx = logger.WithPlayerID(ctx, sender)
	log := logger.FromContext(ctx)

	cmd, ok := d.commands[name]
	if !ok {
		log.Info(LogMsgUnknownCommand, "command", name)
		metrics.ObserveCommand(unknownCommandLabel, metrics.OutcomeRejected)
		return fmt.Sprintf(MsgUnknownCommand, name), nil
	}
	log.Info(LogMsgCommandReceived, "command", name, "args", len(args))

	reply, err := cmd.run(ctx, Call{Sender: sender, Username: username, Args: args})
	if err == nil {
		metrics.ObserveCommand(name, metrics.OutcomeOK)
		return reply, nil
	}

	var ue *usageError
	if errors.As(err, &ue) {
		metrics.ObserveCommand(name, metrics.OutcomeRejected)
		return fmt.Sprintf(MsgUsage, ue.usage), nil
	}
	if de, ok := domain.AsError(err); ok {
		log.Info(LogMsgCommandRejected, "command", name, "reason", de.Error())
		metrics.ObserveCommand(name, metrics.OutcomeRejected)
		return rejectionText(d.cat, de), nil
	}

	log.Error(LogMsgCommandFailed, "command", name, "error", err)
	metrics.ObserveCommand(name, metrics.OutcomeError)
	return "", fmt.Errorf("failed to run command %s: %w", name, err)
}
