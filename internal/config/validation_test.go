package config

import (
	"strings"
	"testing"
)

// validConfig returns a minimal configuration that passes validation.
func validConfig() *Config {
	cfg := &Config{
		Site: SiteConfig{
			Author:      "Jane Doe",
			Name:        "Test Site",
			ContentPath: "content",
			Timezone:    "UTC",
			DefaultLang: "en",
		},
		Pagination: PaginationConfig{PageSize: 10},
	}
	return cfg
}

func TestValidateConfigRejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty author", func(c *Config) { c.Site.Author = " " }, "site.author"},
		{"empty name", func(c *Config) { c.Site.Name = "" }, "site.name"},
		{"bad timezone", func(c *Config) { c.Site.Timezone = "Mars/Olympus" }, "timezone"},
		{"bad language", func(c *Config) { c.Site.DefaultLang = "not a lang!" }, "default_lang"},
		{"relative site url", func(c *Config) { c.Site.URL = "/blog" }, "site.url"},
		{"ftp site url", func(c *Config) { c.Site.URL = "ftp://example.com" }, "http or https"},
		{"content traversal", func(c *Config) { c.Site.ContentPath = "../content" }, "content_path"},
		{"bad cover image", func(c *Config) { c.Site.CoverImageURL = "not-a-url" }, "cover_image_url"},
		{"feed without url", func(c *Config) { c.Feeds.AllAtom = true }, "feeds require site.url"},
		{"empty social platform", func(c *Config) { c.Social = []SocialLink{{Platform: "", URL: "https://x.example"}} }, "platform cannot be empty"},
		{"empty social url", func(c *Config) { c.Social = []SocialLink{{Platform: "github", URL: ""}} }, "URL cannot be empty"},
		{"duplicate social platform", func(c *Config) {
			c.Social = []SocialLink{
				{Platform: "github", URL: "https://github.com/a"},
				{Platform: "github", URL: "https://github.com/b"},
			}
		}, "duplicate social platform"},
		{"empty menu label", func(c *Config) { c.Menu.Items = []MenuItem{{Label: "", Path: "pages/x.html"}} }, "label cannot be empty"},
		{"empty menu path", func(c *Config) { c.Menu.Items = []MenuItem{{Label: "About", Path: ""}} }, "path cannot be empty"},
		{"duplicate menu label", func(c *Config) {
			c.Menu.Items = []MenuItem{
				{Label: "About", Path: "pages/a.html"},
				{Label: "About", Path: "pages/b.html"},
			}
		}, "duplicate menu label"},
		{"bad absolute menu target", func(c *Config) { c.Menu.Items = []MenuItem{{Label: "Ext", Path: "gopher://example.com/x"}} }, "http or https"},
		{"zero pagination", func(c *Config) { c.Pagination.PageSize = 0 }, "page_size"},
		{"bad blogroll url", func(c *Config) { c.Links = []LinkEntry{{Label: "Pelican", URL: "nope"}} }, "links[0]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := ValidateConfig(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	cfg := validConfig()
	cfg.Site.URL = "https://blog.example.com"
	cfg.Feeds.AllAtom = true
	cfg.Social = []SocialLink{{Platform: "github", URL: "https://github.com/janedoe"}}
	cfg.Links = []LinkEntry{{Label: "Pelican", URL: "https://getpelican.com"}}
	cfg.Menu.Items = []MenuItem{
		{Label: "About", Path: "pages/about-me.html"},
		{Label: "Source", Path: "https://github.com/janedoe/blog"},
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfigIDNAHost(t *testing.T) {
	cfg := validConfig()
	cfg.Site.URL = "https://bücher.example"
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("IDN host should validate: %v", err)
	}
}

func TestValidateLinkCheckDurations(t *testing.T) {
	cfg := validConfig()
	cfg.LinkCheck = &LinkCheckConfig{
		Interval:         "5s", // below 1m floor
		RequestTimeout:   "10s",
		CacheTTL:         "24h",
		CacheTTLFailures: "1h",
		MaxConcurrent:    10,
	}
	if err := ValidateConfig(cfg); err == nil {
		t.Fatal("expected error for interval below floor")
	}

	cfg.LinkCheck.Interval = "6h"
	cfg.LinkCheck.RequestTimeout = "7h"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatal("expected error for timeout exceeding interval")
	}

	cfg.LinkCheck.RequestTimeout = "10s"
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected valid link_check, got %v", err)
	}
}
