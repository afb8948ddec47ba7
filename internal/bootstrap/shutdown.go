package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PigFarmBot_Go/internal/discord"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/server"
	"github.com/osse101/PigFarmBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Bot                *discord.Bot
	DailyWorker        *worker.DailyWorker
	ResilientPublisher *event.ResilientPublisher
	Store              repository.Store
}

// GracefulShutdown stops the components in dependency order:
// 1. Command surfaces (HTTP server, Discord bot)
// 2. The daily worker, letting an in-flight rollover finish
// 3. The event publisher, flushing pending retries
// 4. The store
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Bot != nil {
		if err := components.Bot.Stop(); err != nil {
			slog.Error(LogMsgBotStopFailed, "error", err)
		}
	}

	if components.DailyWorker != nil {
		if err := components.DailyWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDailyWorkerFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(ctx); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
