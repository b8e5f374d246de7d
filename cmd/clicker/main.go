package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CurbClicker/internal/catalog"
	"CurbClicker/internal/clock"
	"CurbClicker/internal/config"
	"CurbClicker/internal/economy"
	"CurbClicker/internal/notifier"
	"CurbClicker/internal/persistence"
	"CurbClicker/internal/recorder"
	"CurbClicker/internal/scheduler"
	"CurbClicker/internal/session"
	"CurbClicker/internal/spawner"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CurbClicker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load catalog
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.Load(cfg.CatalogFile)
		if err != nil {
			log.Fatalf("[FATAL] load catalog: %v", err)
		}
	}

	store := openStore(cfg)
	defer store.Close()

	// Init recorder
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	sinks := []notifier.Sink{notifier.LogSink{}}
	if cfg.Storage.HistoryPath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.HistoryPath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
			sinks = append(sinks, sr)
			defer sr.Close()
		}
	}

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	if cfg.NotificationsEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sinks = append(sinks, tn)
		log.Println("[INFO] Telegram notifications enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := notifier.NewDispatcher(64, sinks...)
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	sess := session.New(ctx, session.Deps{
		Catalog:   cat,
		Store:     store,
		Clock:     clock.Real{},
		Publisher: dispatcher,
		Recorder:  rec,
	}, session.Options{
		PlayerID: cfg.Player.ID,
		Engine:   economy.Options{ClickRateLimit: cfg.Engine.ClickRateLimit},
		Persistence: persistence.Options{
			OfflineCap:  cfg.Engine.OfflineCap,
			MaxEarnRate: cfg.Engine.MaxEarnRate,
		},
		Spawner: spawner.Options{
			InitialDelay: cfg.Spawner.InitialDelay,
			MinDelay:     cfg.Spawner.MinDelay,
			MaxDelay:     cfg.Spawner.MaxDelay,
			OfferTimeout: cfg.Spawner.OfferTimeout,
		},
		SpawnerDisabled: cfg.Spawner.Disabled,
		Intervals: scheduler.Intervals{
			Tick:        cfg.Schedule.Tick,
			ClickWindow: cfg.Schedule.ClickWindow,
			Spawner:     cfg.Schedule.Spawner,
			Autosave:    cfg.Schedule.Autosave,
		},
	})

	sess.Open(ctx)
	if saves, err := rec.RecentSaves(sess.Gateway.Scope(), 1); err == nil && len(saves) > 0 {
		log.Printf("[INFO] last recorded save: %s (%s)", saves[0].At.Format(time.RFC3339), saves[0].Trigger)
	}
	if err := sess.Start(); err != nil {
		log.Fatalf("[FATAL] start session: %v", err)
	}

	if tn != nil {
		st := sess.Engine.Snapshot()
		go func() {
			if err := tn.SendWithRetry(ctx, notifier.FormatStatus(&st), 3); err != nil {
				log.Printf("[ERROR] send status: %v", err)
			}
		}()
	}

	// Read commands from stdin
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if reply := handleCommand(ctx, sess, sc.Text()); reply != "" {
				os.Stdout.WriteString(reply + "\n")
			}
		}
	}()

	log.Println("[INFO] CurbClicker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, saving...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := sess.Close(shutdownCtx); err != nil {
		log.Printf("[ERROR] final save: %v", err)
	}
	log.Println("[INFO] CurbClicker stopped")
}

// openStore picks the save backend. A store that cannot be opened degrades to
// memory so play can continue.
func openStore(cfg *config.Config) persistence.Store {
	switch cfg.Storage.Backend {
	case "sqlite":
		s, err := persistence.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err == nil {
			return s
		}
		log.Printf("[WARN] open sqlite store failed, saves will not survive restart: %v", err)
	case "file":
		log.Printf("[INFO] file save store: %s", cfg.Storage.SaveDir)
		return persistence.NewFileStore(cfg.Storage.SaveDir)
	}
	return persistence.NewMemoryStore()
}
