package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/learnlog/learnlog/internal/api"
	"github.com/learnlog/learnlog/internal/config"
	"github.com/learnlog/learnlog/internal/device"
	"github.com/learnlog/learnlog/internal/store"
	"github.com/learnlog/learnlog/internal/sync"
)

// dbFileName is the SQLite database file under the data directory.
const dbFileName = "learnlog.db"

// startupProbeTimeout bounds the initial reachability probe so commands
// stay fast when the server is down.
const startupProbeTimeout = 3 * time.Second

// App bundles the wired subsystem for one CLI invocation: local store,
// remote gateway, connectivity monitor, entity stores, and the queue
// processor. This is the "small operation interface" the UI layer — here,
// the CLI — calls into.
type App struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	DeviceID string

	Store     *store.Store
	Client    *api.Client
	Monitor   *sync.Monitor
	Notifier  *sync.Notifier
	Journals  *sync.JournalStore
	Projects  *sync.ProjectStore
	Processor *sync.Processor
	Prober    *sync.Prober
}

// newApp wires all components from the resolved config and probes the
// server once so the monitor starts with the real connectivity state.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	deviceID, err := device.ID(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	dbPath := ":memory:"
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, dbFileName)
	}

	st, err := store.Open(dbPath, logger)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout.Duration}
	client := api.NewClient(cfg.ServerURL, httpClient, deviceID, logger)

	monitor := sync.NewMonitor(logger)
	notifier := sync.NewNotifier()

	app := &App{
		Cfg:       cfg,
		Logger:    logger,
		DeviceID:  deviceID,
		Store:     st,
		Client:    client,
		Monitor:   monitor,
		Notifier:  notifier,
		Journals:  sync.NewJournalStore(st, client, monitor, notifier, logger),
		Projects:  sync.NewProjectStore(st, client, monitor, notifier, logger),
		Processor: sync.NewProcessor(st, client, monitor, notifier, logger),
		Prober:    sync.NewProber(client, monitor, cfg.ProbeInterval.Duration, logger),
	}

	probeCtx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()

	monitor.SetOnline(client.Ping(probeCtx) == nil)

	return app, nil
}

// Close tears down the monitor and the local store.
func (a *App) Close() error {
	a.Monitor.Close()

	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("closing local store: %w", err)
	}

	return nil
}
