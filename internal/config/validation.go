package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/idna"
	"golang.org/x/text/language"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// ValidateAbsoluteURL checks that a string parses as an absolute http(s) URL
// with an IDNA-valid host. Shared with lint so both surfaces agree on what a
// well-formed URL is.
func ValidateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https scheme", raw)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	if net.ParseIP(host) == nil {
		if _, err := idna.Lookup.ToASCII(host); err != nil {
			return fmt.Errorf("URL %q has invalid host: %w", raw, err)
		}
	}
	return nil
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

// validate performs validation in order of dependencies: site identity first
// since feeds and links reference it.
func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateFeeds(); err != nil {
		return err
	}
	if err := cv.validateSocial(); err != nil {
		return err
	}
	if err := cv.validateLinks(); err != nil {
		return err
	}
	if err := cv.validateMenu(); err != nil {
		return err
	}
	if err := cv.validatePagination(); err != nil {
		return err
	}
	if err := cv.validateLinkCheck(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validateSite() error {
	site := cv.config.Site

	if strings.TrimSpace(site.Author) == "" {
		return errors.New("site.author cannot be empty")
	}
	if strings.TrimSpace(site.Name) == "" {
		return errors.New("site.name cannot be empty")
	}

	// An empty site URL is legal (Pelican leaves SITEURL blank during
	// development); when set it must be absolute.
	if site.URL != "" {
		if err := ValidateAbsoluteURL(site.URL); err != nil {
			return fmt.Errorf("site.url: %w", err)
		}
	}

	if _, err := time.LoadLocation(site.Timezone); err != nil {
		return fmt.Errorf("site.timezone: unknown timezone %q", site.Timezone)
	}

	if _, err := language.Parse(site.DefaultLang); err != nil {
		return fmt.Errorf("site.default_lang: invalid language tag %q", site.DefaultLang)
	}

	if strings.Contains(site.ContentPath, "..") {
		return fmt.Errorf("site.content_path must not traverse upward: %s", site.ContentPath)
	}

	for _, img := range []struct{ field, value string }{
		{"site.cover_image_url", site.CoverImageURL},
		{"site.profile_image_url", site.ProfileImageURL},
	} {
		if img.value == "" {
			continue
		}
		if err := ValidateAbsoluteURL(img.value); err != nil {
			return fmt.Errorf("%s: %w", img.field, err)
		}
	}

	return nil
}

// validateFeeds enforces that enabled feeds have an absolute site URL to
// build their entries against.
func (cv *configurationValidator) validateFeeds() error {
	if cv.config.Feeds.AnyEnabled() && cv.config.Site.URL == "" {
		return errors.New("feeds require site.url to be set (feed entries need absolute links)")
	}
	return nil
}

func (cv *configurationValidator) validateSocial() error {
	seen := make(map[string]bool)
	for i, link := range cv.config.Social {
		if strings.TrimSpace(link.Platform) == "" {
			return fmt.Errorf("social[%d]: platform cannot be empty", i)
		}
		if strings.TrimSpace(link.URL) == "" {
			return fmt.Errorf("social[%d] (%s): URL cannot be empty", i, link.Platform)
		}
		if err := ValidateAbsoluteURL(link.URL); err != nil {
			return fmt.Errorf("social[%d] (%s): %w", i, link.Platform, err)
		}
		if seen[link.Platform] {
			return fmt.Errorf("duplicate social platform: %s", link.Platform)
		}
		seen[link.Platform] = true
	}
	return nil
}

func (cv *configurationValidator) validateLinks() error {
	for i, entry := range cv.config.Links {
		if strings.TrimSpace(entry.Label) == "" {
			return fmt.Errorf("links[%d]: label cannot be empty", i)
		}
		if err := ValidateAbsoluteURL(entry.URL); err != nil {
			return fmt.Errorf("links[%d] (%s): %w", i, entry.Label, err)
		}
	}
	return nil
}

func (cv *configurationValidator) validateMenu() error {
	seen := make(map[string]bool)
	for i, item := range cv.config.Menu.Items {
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("menu.items[%d]: label cannot be empty", i)
		}
		if strings.TrimSpace(item.Path) == "" {
			return fmt.Errorf("menu.items[%d] (%s): path cannot be empty", i, item.Label)
		}
		if seen[item.Label] {
			return fmt.Errorf("duplicate menu label: %s", item.Label)
		}
		seen[item.Label] = true

		// Absolute menu targets must be well-formed; relative targets are
		// resolved against the generated site and checked by lint.
		if strings.Contains(item.Path, "://") {
			if err := ValidateAbsoluteURL(item.Path); err != nil {
				return fmt.Errorf("menu.items[%d] (%s): %w", i, item.Label, err)
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validatePagination() error {
	if cv.config.Pagination.PageSize < 1 {
		return fmt.Errorf("pagination.page_size must be >= 1, got %d", cv.config.Pagination.PageSize)
	}
	return nil
}

func (cv *configurationValidator) validateLinkCheck() error {
	lc := cv.config.LinkCheck
	if lc == nil {
		return nil
	}

	interval, err := time.ParseDuration(lc.Interval)
	if err != nil {
		return fmt.Errorf("invalid link_check.interval: %s: %w", lc.Interval, err)
	}
	if interval < time.Minute {
		return fmt.Errorf("link_check.interval (%s) must be at least 1m", lc.Interval)
	}

	reqTimeout, err := time.ParseDuration(lc.RequestTimeout)
	if err != nil {
		return fmt.Errorf("invalid link_check.request_timeout: %s: %w", lc.RequestTimeout, err)
	}
	if reqTimeout >= interval {
		return fmt.Errorf("link_check.request_timeout (%s) must be shorter than link_check.interval (%s)", lc.RequestTimeout, lc.Interval)
	}

	for _, d := range []struct{ field, value string }{
		{"link_check.cache_ttl", lc.CacheTTL},
		{"link_check.cache_ttl_failures", lc.CacheTTLFailures},
	} {
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid %s: %s: %w", d.field, d.value, err)
		}
	}

	if lc.MaxConcurrent < 1 {
		return fmt.Errorf("link_check.max_concurrent must be >= 1, got %d", lc.MaxConcurrent)
	}

	return nil
}
