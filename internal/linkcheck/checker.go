// Package linkcheck verifies the outbound URLs a site configuration carries:
// social links, blogroll entries, cover/profile imagery and absolute menu
// targets. Results are cached in a NATS KV bucket and broken links are
// published as events.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/statickit/siteconf/internal/config"
)

// Target is a URL to verify together with the config key it came from.
type Target struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Result is the outcome of checking one target.
type Result struct {
	Target    Target    `json:"target"`
	Status    int       `json:"status"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// CollectTargets gathers every outbound URL from a configuration, in config
// order, deduplicated by URL (first source wins).
func CollectTargets(cfg *config.Config) []Target {
	var targets []Target
	seen := make(map[string]bool)

	add := func(url, source string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		targets = append(targets, Target{URL: url, Source: source})
	}

	for i, link := range cfg.Social {
		add(link.URL, fmt.Sprintf("social[%d] (%s)", i, link.Platform))
	}
	for i, entry := range cfg.Links {
		add(entry.URL, fmt.Sprintf("links[%d] (%s)", i, entry.Label))
	}
	add(cfg.Site.CoverImageURL, "site.cover_image_url")
	add(cfg.Site.ProfileImageURL, "site.profile_image_url")
	for i, item := range cfg.Menu.Items {
		if strings.Contains(item.Path, "://") {
			add(item.Path, fmt.Sprintf("menu.items[%d] (%s)", i, item.Label))
		}
	}

	return targets
}

// Checker performs bounded-concurrency HTTP verification.
type Checker struct {
	client        *http.Client
	maxConcurrent int
}

// NewChecker builds a checker from link_check settings. The request timeout
// has been validated as a duration by config loading.
func NewChecker(lc *config.LinkCheckConfig) *Checker {
	timeout, err := time.ParseDuration(lc.RequestTimeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxConcurrent := lc.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Checker{
		client:        &http.Client{Timeout: timeout},
		maxConcurrent: maxConcurrent,
	}
}

// Check verifies all targets, at most maxConcurrent in flight, preserving
// input order in the returned results.
func (c *Checker) Check(ctx context.Context, targets []Target) []Result {
	results := make([]Result, len(targets))
	sem := make(chan struct{}, c.maxConcurrent)
	var wg sync.WaitGroup

	for i, target := range targets {
		wg.Add(1)
		go func(i int, target Target) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = Result{Target: target, Error: ctx.Err().Error(), CheckedAt: time.Now()}
				return
			}
			results[i] = c.checkOne(ctx, target)
		}(i, target)
	}
	wg.Wait()

	return results
}

func (c *Checker) checkOne(ctx context.Context, target Target) Result {
	res := Result{Target: target, CheckedAt: time.Now()}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target.URL, nil)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	resp, err := c.client.Do(req)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		// Some servers reject HEAD; retry with GET before flagging.
		resp.Body.Close()
		var getReq *http.Request
		getReq, err = http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
		if err == nil {
			resp, err = c.client.Do(getReq)
		}
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	res.OK = resp.StatusCode < 400
	return res
}
