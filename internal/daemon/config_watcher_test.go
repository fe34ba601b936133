package daemon

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestPerformReloadAppliesNewConfig(t *testing.T) {
	path := writeTestConfig(t, daemonTestConfig)

	d, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.store.Close()

	updated := strings.Replace(daemonTestConfig, "My Wandering Blog", "Second Name", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	if err := d.watcher.performReload(context.Background()); err != nil {
		t.Fatalf("performReload() error = %v", err)
	}

	if got := d.GetConfig().Site.Name; got != "Second Name" {
		t.Errorf("Site.Name after reload = %q, want Second Name", got)
	}
}

func TestPerformReloadRejectsBrokenConfig(t *testing.T) {
	path := writeTestConfig(t, daemonTestConfig)

	d, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.store.Close()

	// Missing author and name fails validation.
	if err := os.WriteFile(path, []byte("site: {}\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	if err := d.watcher.performReload(context.Background()); err == nil {
		t.Fatal("performReload() accepted an invalid config")
	}

	if got := d.GetConfig().Site.Name; got != "My Wandering Blog" {
		t.Errorf("previous config not retained, Site.Name = %q", got)
	}
}

func TestTriggerReloadDoesNotBlock(t *testing.T) {
	path := writeTestConfig(t, daemonTestConfig)

	d, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.store.Close()

	// Channel capacity is one; repeated triggers coalesce.
	d.watcher.triggerReload()
	d.watcher.triggerReload()
	d.watcher.triggerReload()

	select {
	case <-d.watcher.reloadChan:
	default:
		t.Error("no pending reload after trigger")
	}
}
