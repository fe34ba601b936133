package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/statickit/siteconf/internal/config"
)

func TestCollectTargets(t *testing.T) {
	cfg := &config.Config{
		Site: config.SiteConfig{
			CoverImageURL: "https://img.example/cover.jpg",
		},
		Social: []config.SocialLink{
			{Platform: "github", URL: "https://github.com/janedoe"},
		},
		Links: []config.LinkEntry{
			{Label: "Pelican", URL: "https://getpelican.com"},
		},
		Menu: config.MenuConfig{Items: []config.MenuItem{
			{Label: "About", Path: "pages/about-me.html"},
			{Label: "Source", Path: "https://github.com/janedoe/blog"},
		}},
	}

	targets := CollectTargets(cfg)
	want := []string{
		"https://github.com/janedoe",
		"https://getpelican.com",
		"https://img.example/cover.jpg",
		"https://github.com/janedoe/blog",
	}
	if len(targets) != len(want) {
		t.Fatalf("got %d targets, want %d: %+v", len(targets), len(want), targets)
	}
	for i, url := range want {
		if targets[i].URL != url {
			t.Errorf("targets[%d] = %q, want %q", i, targets[i].URL, url)
		}
	}
}

func TestCollectTargetsDeduplicates(t *testing.T) {
	cfg := &config.Config{
		Social: []config.SocialLink{
			{Platform: "github", URL: "https://github.com/janedoe"},
		},
		Links: []config.LinkEntry{
			{Label: "Me", URL: "https://github.com/janedoe"},
		},
	}
	targets := CollectTargets(cfg)
	if len(targets) != 1 {
		t.Fatalf("expected deduplication, got %+v", targets)
	}
	if targets[0].Source != "social[0] (github)" {
		t.Errorf("first source should win: %s", targets[0].Source)
	}
}

func TestCheckerStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/no-head":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	checker := NewChecker(&config.LinkCheckConfig{RequestTimeout: "5s", MaxConcurrent: 2})
	targets := []Target{
		{URL: srv.URL + "/ok", Source: "a"},
		{URL: srv.URL + "/gone", Source: "b"},
		{URL: srv.URL + "/no-head", Source: "c"},
	}

	results := checker.Check(context.Background(), targets)
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if !results[0].OK || results[0].Status != http.StatusOK {
		t.Errorf("ok target failed: %+v", results[0])
	}
	if results[1].OK || results[1].Status != http.StatusNotFound {
		t.Errorf("404 target should be broken: %+v", results[1])
	}
	if !results[2].OK {
		t.Errorf("HEAD-rejecting server should pass via GET fallback: %+v", results[2])
	}
}

func TestCheckerUnreachable(t *testing.T) {
	checker := NewChecker(&config.LinkCheckConfig{RequestTimeout: "500ms", MaxConcurrent: 1})
	results := checker.Check(context.Background(), []Target{
		{URL: "http://127.0.0.1:1", Source: "dead"},
	})
	if results[0].OK || results[0].Error == "" {
		t.Errorf("unreachable host should report an error: %+v", results[0])
	}
}

func TestCheckerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewChecker(&config.LinkCheckConfig{RequestTimeout: "5s", MaxConcurrent: 1})
	done := make(chan struct{})
	go func() {
		checker.Check(ctx, []Target{{URL: "http://127.0.0.1:1", Source: "x"}})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Check did not return after context cancellation")
	}
}
