package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments & warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig performs canonicalization on enumerated and bounded fields
// prior to default application. It mutates the provided config in-place and
// returns a result describing any coercions. Normalization never fails the
// load; structurally broken values are left for validation to reject.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeSite(&c.Site, res)
	normalizeSocial(c.Social, res)
	normalizePagination(&c.Pagination, res)
	c.Plugins = normalizePlugins(c.Plugins, res)
	normalizeMonitoring(c.Monitoring, res)
	normalizeLinkCheck(c.LinkCheck, res)
	return res, nil
}

func normalizeSite(s *SiteConfig, res *NormalizationResult) {
	if trimmed := strings.TrimSpace(s.Timezone); trimmed != s.Timezone {
		res.Warnings = append(res.Warnings, warnChanged("site.timezone", s.Timezone, trimmed))
		s.Timezone = trimmed
	}
	if lang := strings.TrimSpace(s.DefaultLang); lang != s.DefaultLang {
		res.Warnings = append(res.Warnings, warnChanged("site.default_lang", s.DefaultLang, lang))
		s.DefaultLang = lang
	}
	// Trailing slash on the site URL produces doubled slashes in generated
	// links, so strip it here.
	if trimmed := strings.TrimRight(s.URL, "/"); trimmed != s.URL {
		res.Warnings = append(res.Warnings, warnChanged("site.url", s.URL, trimmed))
		s.URL = trimmed
	}
}

func normalizeSocial(links []SocialLink, res *NormalizationResult) {
	for i := range links {
		if norm := NormalizePlatform(links[i].Platform); norm != links[i].Platform {
			res.Warnings = append(res.Warnings, warnChanged(fmt.Sprintf("social[%d].platform", i), links[i].Platform, norm))
			links[i].Platform = norm
		}
	}
}

func normalizePagination(p *PaginationConfig, res *NormalizationResult) {
	if p.PageSize < 0 {
		res.Warnings = append(res.Warnings, warnChanged("pagination.page_size", p.PageSize, 0))
		p.PageSize = 0
	}
}

// normalizePlugins preserves order (plugin order matters to the generator)
// and drops duplicate names with a warning.
func normalizePlugins(plugins []string, res *NormalizationResult) []string {
	if len(plugins) == 0 {
		return plugins
	}
	seen := make(map[string]bool, len(plugins))
	out := plugins[:0]
	for _, p := range plugins {
		name := strings.TrimSpace(p)
		if name == "" {
			res.Warnings = append(res.Warnings, "dropped empty plugin name")
			continue
		}
		if seen[name] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("dropped duplicate plugin '%s'", name))
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func normalizeMonitoring(m *MonitoringConfig, res *NormalizationResult) {
	if m == nil {
		return
	}
	if lvl := NormalizeLogLevel(string(m.Logging.Level)); lvl != "" {
		if m.Logging.Level != lvl {
			res.Warnings = append(res.Warnings, warnChanged("monitoring.logging.level", m.Logging.Level, lvl))
			m.Logging.Level = lvl
		}
	} else if string(m.Logging.Level) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("monitoring.logging.level", string(m.Logging.Level), string(LogLevelInfo)))
		m.Logging.Level = LogLevelInfo
	}
	if f := NormalizeLogFormat(string(m.Logging.Format)); f != "" {
		if m.Logging.Format != f {
			res.Warnings = append(res.Warnings, warnChanged("monitoring.logging.format", m.Logging.Format, f))
			m.Logging.Format = f
		}
	} else if string(m.Logging.Format) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("monitoring.logging.format", string(m.Logging.Format), string(LogFormatText)))
		m.Logging.Format = LogFormatText
	}
}

func normalizeLinkCheck(lc *LinkCheckConfig, res *NormalizationResult) {
	if lc == nil {
		return
	}
	if lc.MaxConcurrent < 0 {
		res.Warnings = append(res.Warnings, warnChanged("link_check.max_concurrent", lc.MaxConcurrent, 0))
		lc.MaxConcurrent = 0
	}
}

func warnChanged(field string, from, to interface{}) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}
func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
