package config

import "testing"

func TestNormalizeConfigCoercions(t *testing.T) {
	cfg := &Config{
		Site:       SiteConfig{URL: "https://example.com/", Timezone: " Europe/Berlin "},
		Social:     []SocialLink{{Platform: "  GitHub ", URL: "https://github.com/janedoe"}},
		Pagination: PaginationConfig{PageSize: -3},
		Plugins:    []string{"sitemap", "sitemap", "", "neighbors"},
	}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig error: %v", err)
	}
	if cfg.Site.URL != "https://example.com" {
		t.Errorf("site URL not trimmed: %q", cfg.Site.URL)
	}
	if cfg.Site.Timezone != "Europe/Berlin" {
		t.Errorf("timezone not trimmed: %q", cfg.Site.Timezone)
	}
	if cfg.Social[0].Platform != "github" {
		t.Errorf("platform not normalized: %q", cfg.Social[0].Platform)
	}
	if cfg.Pagination.PageSize != 0 {
		t.Errorf("negative page_size not clamped: %d", cfg.Pagination.PageSize)
	}
	if len(cfg.Plugins) != 2 || cfg.Plugins[0] != "sitemap" || cfg.Plugins[1] != "neighbors" {
		t.Errorf("plugins not deduplicated in order: %v", cfg.Plugins)
	}
	if len(res.Warnings) < 5 {
		t.Errorf("expected >=5 warnings, got %d: %v", len(res.Warnings), res.Warnings)
	}
}

func TestNormalizeConfigMonitoringEnums(t *testing.T) {
	cfg := &Config{
		Monitoring: &MonitoringConfig{
			Logging: MonitoringLogging{Level: "DeBuG", Format: "gibberish"},
		},
	}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig error: %v", err)
	}
	if cfg.Monitoring.Logging.Level != LogLevelDebug {
		t.Errorf("level not normalized: %v", cfg.Monitoring.Logging.Level)
	}
	if cfg.Monitoring.Logging.Format != LogFormatText {
		t.Errorf("unknown format fallback failed: %v", cfg.Monitoring.Logging.Format)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", res.Warnings)
	}
}

func TestNormalizeConfigNil(t *testing.T) {
	if _, err := NormalizeConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
