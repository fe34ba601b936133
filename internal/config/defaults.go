package config

// ConfigDefaultApplier applies defaults for a specific configuration domain.
type ConfigDefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles Site configuration defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.ContentPath == "" {
		cfg.Site.ContentPath = "content"
	}
	if cfg.Site.Timezone == "" {
		cfg.Site.Timezone = "UTC"
	}
	if cfg.Site.DefaultLang == "" {
		cfg.Site.DefaultLang = "en"
	}
	return nil
}

// ThemeDefaultApplier handles Theme configuration defaults.
type ThemeDefaultApplier struct{}

func (t *ThemeDefaultApplier) Domain() string { return "theme" }

func (t *ThemeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Theme.Path == "" {
		cfg.Theme.Path = "./theme"
	}
	return nil
}

// MenuDefaultApplier handles Menu configuration defaults.
type MenuDefaultApplier struct{}

func (m *MenuDefaultApplier) Domain() string { return "menu" }

func (m *MenuDefaultApplier) ApplyDefaults(cfg *Config) error {
	// Pages are listed on the menu unless the user explicitly opted out.
	if cfg.Menu.DisplayPages == nil {
		v := true
		cfg.Menu.DisplayPages = &v
	}
	return nil
}

// PaginationDefaultApplier handles Pagination configuration defaults.
type PaginationDefaultApplier struct{}

func (p *PaginationDefaultApplier) Domain() string { return "pagination" }

func (p *PaginationDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Pagination.PageSize == 0 {
		cfg.Pagination.PageSize = 10
	}
	return nil
}

// DaemonDefaultApplier handles Daemon configuration defaults.
type DaemonDefaultApplier struct{}

func (d *DaemonDefaultApplier) Domain() string { return "daemon" }

func (d *DaemonDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Daemon == nil {
		return nil // No daemon section, nothing to default
	}
	if cfg.Daemon.HTTP.AdminPort == 0 {
		cfg.Daemon.HTTP.AdminPort = 8077
	}
	if cfg.Daemon.Storage.JournalPath == "" {
		cfg.Daemon.Storage.JournalPath = "./siteconf-revisions.db"
	}
	return nil
}

// MonitoringDefaultApplier handles Monitoring configuration defaults.
type MonitoringDefaultApplier struct{}

func (m *MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (m *MonitoringDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Monitoring == nil {
		cfg.Monitoring = &MonitoringConfig{}
	}
	if cfg.Monitoring.Metrics.Path == "" {
		cfg.Monitoring.Metrics.Path = "/metrics"
	}
	if cfg.Monitoring.Health.Path == "" {
		cfg.Monitoring.Health.Path = "/healthz"
	}
	if cfg.Monitoring.Logging.Level == "" {
		cfg.Monitoring.Logging.Level = LogLevelInfo
	}
	if cfg.Monitoring.Logging.Format == "" {
		cfg.Monitoring.Logging.Format = LogFormatText
	}
	return nil
}

// LinkCheckDefaultApplier handles LinkCheck configuration defaults.
type LinkCheckDefaultApplier struct{}

func (l *LinkCheckDefaultApplier) Domain() string { return "link_check" }

func (l *LinkCheckDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.LinkCheck == nil {
		cfg.LinkCheck = &LinkCheckConfig{}
	}
	lc := cfg.LinkCheck
	if lc.Interval == "" {
		lc.Interval = "6h"
	}
	if lc.NATSURL == "" {
		lc.NATSURL = "nats://localhost:4222"
	}
	if lc.Subject == "" {
		lc.Subject = "siteconf.links.broken"
	}
	if lc.ReloadSubject == "" {
		lc.ReloadSubject = "siteconf.config.reloaded"
	}
	if lc.KVBucket == "" {
		lc.KVBucket = "siteconf-link-cache"
	}
	if lc.CacheTTL == "" {
		lc.CacheTTL = "24h"
	}
	if lc.CacheTTLFailures == "" {
		lc.CacheTTLFailures = "1h"
	}
	if lc.MaxConcurrent == 0 {
		lc.MaxConcurrent = 10
	}
	if lc.RequestTimeout == "" {
		lc.RequestTimeout = "10s"
	}
	return nil
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []ConfigDefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []ConfigDefaultApplier{
			&SiteDefaultApplier{},
			&ThemeDefaultApplier{},
			&MenuDefaultApplier{},
			&PaginationDefaultApplier{},
			&DaemonDefaultApplier{},
			&MonitoringDefaultApplier{},
			&LinkCheckDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// GetApplierByDomain returns a specific domain applier (useful for testing).
func (c *CompositeDefaultApplier) GetApplierByDomain(domain string) ConfigDefaultApplier {
	for _, applier := range c.appliers {
		if applier.Domain() == domain {
			return applier
		}
	}
	return nil
}
