package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/prd11/dream11-bot/dreambot"
	"github.com/prd11/dream11-bot/dreambot/commands"
	"github.com/prd11/dream11-bot/dreambot/database/repositories"
	"github.com/prd11/dream11-bot/dreambot/logger"
	"github.com/prd11/dream11-bot/dreambot/notifier"
	"github.com/prd11/dream11-bot/dreambot/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(nil)))

	slog.Info("Starting Dream11 Points Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := dreambot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.HandlerOptions())))

	if problems := cfg.Validate(); len(problems) > 0 {
		keys := make([]string, 0, len(problems))
		for k := range problems {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			slog.Error("Invalid configuration", slog.String("setting", k), slog.String("problem", problems[k]))
		}
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dreambot.OpenDatabase(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to prepare database", slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()

	b := dreambot.New(*cfg, version, commit)
	b.DB = db
	b.Alerts = repositories.NewAlertRepository(db.BunDB())

	if b.Ledger, err = dreambot.NewLedger(ctx, *cfg, db); err != nil {
		slog.Error("Failed to initialize ledger", slog.Any("error", err))
		os.Exit(-1)
	}
	if b.Schedule, err = dreambot.LoadSchedule(cfg.Schedule); err != nil {
		slog.Error("Failed to load schedule", slog.Any("error", err))
		os.Exit(-1)
	}

	h := handler.New()
	commands.Register(h, b)
	router := commands.NewRouter(b)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), commands.MessageListener(router)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Notifier.Enabled {
		n := notifier.New(b.Schedule, b.Alerts, notifier.RestSender{Client: b.Client}, notifier.Options{
			Interval:    time.Duration(cfg.Notifier.IntervalSeconds) * time.Second,
			Lead:        time.Duration(cfg.Notifier.LeadMinutes) * time.Minute,
			MaxParallel: cfg.Notifier.MaxParallel,
		})
		go n.Run(runCtx)
	}

	if cfg.Web.Addr != "" {
		srv := web.New(web.Deps{
			DB:       db,
			Ledger:   b.Ledger,
			Schedule: b.Schedule,
			Version:  version,
			Commit:   commit,
		})
		go func() {
			if err := srv.Listen(cfg.Web.Addr); err != nil {
				slog.Error("Status API stopped", slog.String("type", "sys"), slog.Any("error", err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("Status API shutdown failed", slog.Any("error", err))
			}
		}()
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	<-runCtx.Done()
	slog.Info("Shutting down bot...")
}
