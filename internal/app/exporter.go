package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hrsync-hq/bamboo-sync/internal/config"
	"github.com/hrsync-hq/bamboo-sync/internal/export"
	"github.com/hrsync-hq/bamboo-sync/internal/logger"
	"github.com/hrsync-hq/bamboo-sync/internal/storage"
	"github.com/hrsync-hq/bamboo-sync/pkg/bamboohr"
	"github.com/hrsync-hq/bamboo-sync/pkg/publishers"
	"github.com/hrsync-hq/bamboo-sync/pkg/reports"
)

// Exporter is the bamboo-sync runtime. It manages the export loop,
// coordinating between the BambooHR client, report presets, the export-state
// store, and publishers.
type Exporter struct {
	cfg          *config.Config
	reportsReg   *reports.Registry
	fanout       *publishers.Fanout
	service      *export.Service
	store        storage.Store
	syncInterval time.Duration
	runOnce      bool
	log          logger.Logger
}

// NewExporter builds an exporter runtime from config files.
func NewExporter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Exporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reportsReg, err := reports.LoadRegistry(cfg.ReportsFile)
	if err != nil {
		return nil, fmt.Errorf("load reports registry: %w", err)
	}
	presetList := reportsReg.All()
	presetIDs := make([]string, 0, len(presetList))
	for _, p := range presetList {
		presetIDs = append(presetIDs, p.ID)
	}
	log.InfoObj("reports registry loaded", "reports_meta", map[string]any{
		"reports_file": cfg.ReportsFile,
		"report_ids":   presetIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubRegistry := publishers.DefaultRegistry()
	pubClients, err := publishers.BuildAll(ctx, pubRegistry, enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"publishers_file":  cfg.PublishersFile,
		"publishers_count": fanout.Size(),
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		RecordTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	client, err := bamboohr.New(bamboohr.Config{
		Subdomain: cfg.BambooHRSubdomain,
		Token:     cfg.BambooHRToken,
		BaseURL:   cfg.BambooHRBaseURL,
		Timeout:   cfg.HTTPTimeout,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build bamboohr client: %w", err)
	}

	return &Exporter{
		cfg:          cfg,
		reportsReg:   reportsReg,
		fanout:       fanout,
		service:      export.NewService(client, store, fanout, log),
		store:        store,
		syncInterval: cfg.SyncInterval,
		runOnce:      cfg.RunOnce,
		log:          log,
	}, nil
}

// Run starts the export loop until the context is cancelled. In run-once mode
// it returns after the first pass.
func (e *Exporter) Run(ctx context.Context) error {
	if e == nil || e.service == nil {
		return fmt.Errorf("exporter is not initialized")
	}
	defer e.Close()

	presets := e.reportsReg.Enabled()
	if len(presets) == 0 {
		e.log.WarnObj("no report presets enabled; exporter idle", "reports_file", e.cfg.ReportsFile)
		<-ctx.Done()
		return ctx.Err()
	}

	e.log.InfoObj("export loop starting", "exporter_state", map[string]any{
		"reports_count":    len(presets),
		"publishers_count": e.fanout.Size(),
		"sync_interval":    e.syncInterval.String(),
		"run_once":         e.runOnce,
	})

	if err := e.service.Run(ctx, presets); err != nil {
		if e.runOnce {
			return fmt.Errorf("export pass: %w", err)
		}
		e.log.ErrorObj("export pass finished with errors", "pass_error", err.Error())
	}
	if e.runOnce {
		return nil
	}

	ticker := time.NewTicker(e.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.InfoObj("export loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := e.service.Run(ctx, presets); err != nil {
				e.log.ErrorObj("export pass finished with errors", "pass_error", err.Error())
			}
		}
	}
}

// Close releases the exporter's resources.
func (e *Exporter) Close() error {
	if e == nil || e.store == nil {
		return nil
	}
	return e.store.Close()
}
