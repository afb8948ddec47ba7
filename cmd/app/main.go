package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/PigFarmBot_Go/docs"
	"github.com/osse101/PigFarmBot_Go/internal/bootstrap"
	"github.com/osse101/PigFarmBot_Go/internal/command"
	"github.com/osse101/PigFarmBot_Go/internal/config"
	"github.com/osse101/PigFarmBot_Go/internal/discord"
	"github.com/osse101/PigFarmBot_Go/internal/handler"
	"github.com/osse101/PigFarmBot_Go/internal/notify"
	"github.com/osse101/PigFarmBot_Go/internal/server"
	"github.com/osse101/PigFarmBot_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// @title PigFarm API
// @version 1.0
// @description Pig farm economy engine behind the chat bot.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey AdminAuth
// @in header
// @name X-Admin-ID
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to setup logger", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}
	docs.SwaggerInfo.Version = cfg.Version

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	// Services publish through the resilient publisher so failed handlers are retried.
	services := bootstrap.InitializeServices(store, cat, publisher, cfg.AdminIDs)
	dispatcher := command.NewDispatcher(services, cat, command.Options{ReferralLink: cfg.ReferralLink})

	health := handler.HealthCheckers{handler.StoreHealth{Store: store}}

	var bot *discord.Bot
	var chat notify.Notifier
	if cfg.DiscordEnabled() {
		bot, err = discord.New(discord.Config{
			Token:   cfg.DiscordToken,
			AppID:   cfg.DiscordAppID,
			GuildID: cfg.DiscordGuildID,
		}, dispatcher)
		if err != nil {
			slog.Error("Failed to create Discord bot", "error", err)
			os.Exit(1)
		}
		if err := bot.Start(); err != nil {
			slog.Error("Failed to start Discord bot", "error", err)
			os.Exit(1)
		}
		chat = bot.Notifier()
		health = append(health, bot)
	} else {
		slog.Info("Discord bot disabled, DISCORD_TOKEN or DISCORD_APP_ID not set")
	}

	players, admins := bootstrap.BuildNotifiers(cfg, chat)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:     publisher,
		Notifier:     players,
		AdminChannel: admins,
		AdminIDs:     cfg.AdminIDs,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	dailyWorker, err := worker.NewDailyWorker(services.Farm, players, publisher, cfg.DailyJobSpec)
	if err != nil {
		slog.Error("Failed to create daily worker", "error", err)
		os.Exit(1)
	}
	if err := dailyWorker.Start(); err != nil {
		slog.Error("Failed to start daily worker", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		AdminIDs:       cfg.AdminIDs,
	}, server.Deps{
		Services:   services,
		Dispatcher: dispatcher,
		Health:     health,
	})

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Bot:                bot,
		DailyWorker:        dailyWorker,
		ResilientPublisher: publisher,
		Store:              store,
	})
}
