package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/statickit/siteconf/internal/linkcheck"
	"github.com/statickit/siteconf/internal/logfields"
)

// Scheduler runs periodic link verification over the active configuration.
type Scheduler struct {
	scheduler gocron.Scheduler
	daemon    *Daemon
	interval  time.Duration
}

// NewScheduler creates the scheduler from the daemon's link check settings.
func NewScheduler(d *Daemon) (*Scheduler, error) {
	lc := d.GetConfig().LinkCheck
	interval, err := time.ParseDuration(lc.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid link check interval %q: %w", lc.Interval, err)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		daemon:    d,
		interval:  interval,
	}, nil
}

// Start registers the link check job and begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runLinkCheck, ctx),
		gocron.WithName("link-check"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create link check job: %w", err)
	}

	slog.Info("Starting link check scheduler", slog.Duration("interval", s.interval))
	s.scheduler.Start()
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(_ context.Context) error {
	slog.Info("Stopping link check scheduler")
	return s.scheduler.Shutdown()
}

// runLinkCheck is called by gocron on each tick. Cached results are reused
// while fresh; everything else is checked and broken links published.
func (s *Scheduler) runLinkCheck(ctx context.Context) {
	cfg := s.daemon.GetConfig()
	targets := linkcheck.CollectTargets(cfg)
	if len(targets) == 0 {
		slog.Debug("Link check skipped, no outbound URLs configured")
		return
	}

	start := time.Now()
	slog.Info("Running link check", slog.Int("targets", len(targets)))

	events := s.daemon.events

	// Partition into cached and stale targets.
	var toCheck []linkcheck.Target
	broken := 0
	for _, t := range targets {
		if events != nil {
			cached, err := events.GetCachedResult(t.URL)
			if err == nil && events.IsCacheValid(cached) {
				s.daemon.metrics.IncLinkCheck(cached.IsValid)
				if !cached.IsValid {
					broken++
				}
				continue
			}
		}
		toCheck = append(toCheck, t)
	}

	checker := linkcheck.NewChecker(cfg.LinkCheck)
	results := checker.Check(ctx, toCheck)

	for _, res := range results {
		s.daemon.metrics.IncLinkCheck(res.OK)

		if events != nil {
			entry := &linkcheck.CacheEntry{
				URL:     res.Target.URL,
				Status:  res.Status,
				IsValid: res.OK,
				Error:   res.Error,
			}
			if err := events.SetCachedResult(entry); err != nil {
				slog.Debug("Failed to cache link result", logfields.URL(res.Target.URL), logfields.Error(err))
			}
		}

		if res.OK {
			continue
		}
		broken++

		slog.Warn("Broken link",
			logfields.URL(res.Target.URL),
			slog.String("source", res.Target.Source),
			logfields.Status(res.Status))

		if events != nil {
			event := &linkcheck.BrokenLinkEvent{
				URL:       res.Target.URL,
				Source:    res.Target.Source,
				Status:    res.Status,
				Error:     res.Error,
				Timestamp: res.CheckedAt,
			}
			if err := events.PublishBrokenLink(event); err != nil {
				slog.Error("Failed to publish broken link event", logfields.Error(err))
			}
		}
	}

	s.daemon.metrics.SetBrokenLinks(broken)

	slog.Info("Link check complete",
		slog.Int("targets", len(targets)),
		slog.Int("checked", len(results)),
		slog.Int("broken", broken),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
