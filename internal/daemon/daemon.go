// Package daemon runs siteconf in long-lived mode: it serves the active
// configuration over HTTP, reloads it when the file changes, journals every
// accepted revision, and schedules outbound link verification.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/statickit/siteconf/internal/config"
	"github.com/statickit/siteconf/internal/errors"
	"github.com/statickit/siteconf/internal/linkcheck"
	"github.com/statickit/siteconf/internal/logfields"
	"github.com/statickit/siteconf/internal/revision"
)

// Daemon holds the active configuration and the services around it.
type Daemon struct {
	configPath string

	mu       sync.RWMutex
	cfg      *config.Config
	warnings []string

	store   *revision.Store
	events  *linkcheck.NATSClient
	metrics *Recorder

	httpServer *HTTPServer
	watcher    *ConfigWatcher
	scheduler  *Scheduler

	startTime time.Time
}

// New loads the configuration at configPath and assembles the daemon.
// The daemon section gets its defaults even when the file omits it, since
// daemon mode cannot run without a listen port and a journal path.
func New(configPath string) (*Daemon, error) {
	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryDaemon, errors.SeverityFatal, "load configuration")
	}

	applyLogging(cfg.Monitoring)

	if cfg.Daemon == nil {
		cfg.Daemon = &config.DaemonConfig{}
		applier := config.NewDefaultApplier().GetApplierByDomain("daemon")
		if applier != nil {
			if err := applier.ApplyDefaults(cfg); err != nil {
				return nil, errors.Wrap(err, errors.CategoryDaemon, errors.SeverityFatal, "apply daemon defaults")
			}
		}
	}

	store, err := revision.NewStore(cfg.Daemon.Storage.JournalPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryStorage, errors.SeverityFatal, "open revision journal")
	}

	d := &Daemon{
		configPath: configPath,
		cfg:        cfg,
		warnings:   warnings,
		store:      store,
		metrics:    NewRecorder(nil),
		startTime:  time.Now(),
	}

	if cfg.LinkCheck != nil && cfg.LinkCheck.Enabled {
		events, err := linkcheck.NewNATSClient(cfg.LinkCheck)
		if err != nil {
			// Link checking degrades to local-only; the daemon itself stays up.
			slog.Warn("NATS unavailable, link events and cache disabled", logfields.Error(err))
		} else {
			d.events = events
		}
	}

	d.httpServer = NewHTTPServer(d)

	watcher, err := NewConfigWatcher(configPath, d)
	if err != nil {
		_ = store.Close()
		return nil, errors.Wrap(err, errors.CategoryDaemon, errors.SeverityFatal, "create config watcher")
	}
	d.watcher = watcher

	if cfg.LinkCheck != nil && cfg.LinkCheck.Enabled {
		scheduler, err := NewScheduler(d)
		if err != nil {
			_ = store.Close()
			return nil, errors.Wrap(err, errors.CategoryDaemon, errors.SeverityFatal, "create scheduler")
		}
		d.scheduler = scheduler
	}

	return d, nil
}

// Start journals the initial revision and brings up the HTTP server, config
// watcher, and link check scheduler.
func (d *Daemon) Start(ctx context.Context) error {
	slog.Info("Starting daemon",
		logfields.ConfigPath(d.configPath),
		slog.Int("admin_port", d.GetConfig().Daemon.HTTP.AdminPort))

	if err := d.journalCurrent(ctx); err != nil {
		slog.Error("Failed to journal initial revision", logfields.Error(err))
	}
	d.metrics.IncReload(true)
	d.recordActive()

	if err := d.httpServer.Start(ctx); err != nil {
		return err
	}
	if err := d.watcher.Start(ctx); err != nil {
		return err
	}
	if d.scheduler != nil {
		if err := d.scheduler.Start(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Stop shuts everything down in reverse start order.
func (d *Daemon) Stop(ctx context.Context) error {
	slog.Info("Stopping daemon")

	if d.scheduler != nil {
		if err := d.scheduler.Stop(ctx); err != nil {
			slog.Error("Error stopping scheduler", logfields.Error(err))
		}
	}
	if err := d.watcher.Stop(ctx); err != nil {
		slog.Error("Error stopping config watcher", logfields.Error(err))
	}
	if err := d.httpServer.Stop(ctx); err != nil {
		slog.Error("Error stopping HTTP server", logfields.Error(err))
	}
	if d.events != nil {
		if err := d.events.Close(); err != nil {
			slog.Error("Error closing NATS connection", logfields.Error(err))
		}
	}

	return d.store.Close()
}

// GetConfig returns the active configuration.
func (d *Daemon) GetConfig() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// GetWarnings returns the normalization warnings of the active configuration.
func (d *Daemon) GetWarnings() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.warnings
}

// Uptime reports how long the daemon has been running.
func (d *Daemon) Uptime() time.Duration {
	return time.Since(d.startTime)
}

// ReloadConfig swaps in a freshly loaded configuration, journals the revision,
// and publishes a reload event. A failed journal write does not reject the
// reload; the new configuration is already validated at this point.
func (d *Daemon) ReloadConfig(ctx context.Context, cfg *config.Config, warnings []string) error {
	if cfg == nil {
		return errors.New(errors.CategoryDaemon, errors.SeverityError, "reload with nil configuration")
	}

	// Daemon mode keeps requiring the daemon section across reloads.
	if cfg.Daemon == nil {
		d.mu.RLock()
		cfg.Daemon = d.cfg.Daemon
		d.mu.RUnlock()
	}

	d.mu.Lock()
	d.cfg = cfg
	d.warnings = warnings
	d.mu.Unlock()

	applyLogging(cfg.Monitoring)

	d.metrics.IncReload(true)
	d.recordActive()

	if err := d.journalCurrent(ctx); err != nil {
		slog.Error("Failed to journal revision", logfields.Error(err))
	}

	return nil
}

// ReloadFailed records a reload attempt that did not produce a usable
// configuration. The previous configuration stays active.
func (d *Daemon) ReloadFailed(err error) {
	d.metrics.IncReload(false)
	slog.Error("Configuration reload failed, keeping previous configuration",
		logfields.ConfigPath(d.configPath),
		logfields.Error(err))
}

// Revisions returns the most recent journal entries, newest first.
func (d *Daemon) Revisions(ctx context.Context, n int) ([]revision.Revision, error) {
	return d.store.Tail(ctx, n)
}

func (d *Daemon) journalCurrent(ctx context.Context) error {
	content, err := os.ReadFile(d.configPath)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	rev := revision.NewRevision(d.configPath, content, revision.GitCommitFor(d.configPath), d.GetWarnings())
	if err := d.store.Append(ctx, rev); err != nil {
		return err
	}

	slog.Info("Journaled configuration revision",
		logfields.Revision(rev.ID),
		logfields.Commit(rev.GitCommit))

	if d.events != nil {
		event := &linkcheck.ReloadEvent{
			RevisionID: rev.ID,
			SourcePath: rev.SourcePath,
			SHA256:     rev.SHA256,
			GitCommit:  rev.GitCommit,
			Warnings:   rev.Warnings,
			Timestamp:  time.Now(),
		}
		if err := d.events.PublishReload(event); err != nil {
			slog.Error("Failed to publish reload event", logfields.Error(err))
		}
	}

	return nil
}

func (d *Daemon) recordActive() {
	cfg := d.GetConfig()
	d.metrics.SetLastReload(float64(time.Now().Unix()))
	d.metrics.SetWarningCount(len(d.GetWarnings()))
	d.metrics.SetConfigInfo(cfg.Site.Name, cfg.Theme.Path)
}
