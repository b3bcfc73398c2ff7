package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohitp80/CampusVibe-sub000/internal/api"
	"github.com/rohitp80/CampusVibe-sub000/internal/config"
	"github.com/rohitp80/CampusVibe-sub000/internal/localstore"
	"github.com/rohitp80/CampusVibe-sub000/internal/notify"
	"github.com/rohitp80/CampusVibe-sub000/internal/scheduler"
	"github.com/rohitp80/CampusVibe-sub000/internal/service"
	"github.com/rohitp80/CampusVibe-sub000/internal/state"
	"github.com/rohitp80/CampusVibe-sub000/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting CampusConnect client core...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Open the local cache
	cache, err := localstore.Open(cfg.StorePath, cfg.AppEnv)
	if err != nil {
		logger.Fatal("Failed to open local store", err)
	}
	defer cache.Close()

	// Hydrate application state from the cache
	store := state.NewStore(cache)
	if err := store.Hydrate(); err != nil {
		logger.Warn("Failed to hydrate state, starting empty", "error", err)
	}

	// Remote façade; the session token lives in the cache so a
	// restart keeps the session
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, func() string {
		token, _, err := cache.Get(localstore.KeySessionToken)
		if err != nil {
			logger.Warn("Failed to read session token", "error", err)
			return ""
		}
		return token
	})

	notifier := notify.LogNotifier{}
	posts := service.NewPostService(store, client, notifier)
	poller := scheduler.NewFriendsPoller(store, client, cfg.GetFriendsCacheWindow())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := scheduler.NewRefresher(cfg.GetRequestPollInterval(), func(ctx context.Context) {
		poller.Refresh(ctx)
		if store.CurrentUsername() != "" {
			if err := posts.RefreshFeed(ctx, 1, cfg.PageSize); err != nil {
				logger.Debug("Feed refresh skipped", "error", err)
			}
		}
		if cfg.TimeCapsuleSweep {
			if n := store.UnlockDuePosts(time.Now()); n > 0 {
				logger.Info("Unlocked due time capsules", "count", n)
			}
		}
	})
	go refresher.Run(ctx)

	logger.Info("Client core started", "env", cfg.AppEnv, "store", cfg.StorePath)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	refresher.Stop()
	cancel()
	logger.Info("Client core stopped")
}
