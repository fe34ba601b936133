package config

import "testing"

func TestDaemonDefaultsOnlyWhenSectionPresent(t *testing.T) {
	cfg := &Config{}
	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if cfg.Daemon != nil {
		t.Error("daemon section must not be invented by defaults")
	}

	cfg = &Config{Daemon: &DaemonConfig{}}
	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if cfg.Daemon.HTTP.AdminPort != 8077 {
		t.Errorf("admin port default = %d, want 8077", cfg.Daemon.HTTP.AdminPort)
	}
	if cfg.Daemon.Storage.JournalPath == "" {
		t.Error("journal path default missing")
	}
}

func TestLinkCheckDefaults(t *testing.T) {
	cfg := &Config{}
	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	lc := cfg.LinkCheck
	if lc == nil {
		t.Fatal("link_check section should be created with defaults")
	}
	if lc.Interval != "6h" || lc.MaxConcurrent != 10 || lc.Subject != "siteconf.links.broken" {
		t.Errorf("unexpected link_check defaults: %+v", lc)
	}
}

func TestGetApplierByDomain(t *testing.T) {
	c := NewDefaultApplier()
	if c.GetApplierByDomain("site") == nil {
		t.Error("site applier missing")
	}
	if c.GetApplierByDomain("nope") != nil {
		t.Error("unknown domain should return nil")
	}
}
