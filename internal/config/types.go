package config

import (
	"log/slog"
	"strings"
)

// SiteConfig holds the site identity and presentation values consumed by the
// downstream generator: author, site name, canonical URL, timezone, language
// and the optional cover/profile imagery.
type SiteConfig struct {
	Author          string `yaml:"author" toml:"author" json:"author"`
	Name            string `yaml:"name" toml:"name" json:"name"`
	URL             string `yaml:"url,omitempty" toml:"url,omitempty" json:"url,omitempty"`
	Tagline         string `yaml:"tagline,omitempty" toml:"tagline,omitempty" json:"tagline,omitempty"`
	ContentPath     string `yaml:"content_path,omitempty" toml:"content_path,omitempty" json:"content_path,omitempty"`
	Timezone        string `yaml:"timezone,omitempty" toml:"timezone,omitempty" json:"timezone,omitempty"`
	DefaultLang     string `yaml:"default_lang,omitempty" toml:"default_lang,omitempty" json:"default_lang,omitempty"`
	CoverImageURL   string `yaml:"cover_image_url,omitempty" toml:"cover_image_url,omitempty" json:"cover_image_url,omitempty"`
	ProfileImageURL string `yaml:"profile_image_url,omitempty" toml:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
	// RelativeURLs requests document-relative URLs from the generator,
	// typically only useful while developing locally.
	RelativeURLs bool `yaml:"relative_urls,omitempty" toml:"relative_urls,omitempty" json:"relative_urls,omitempty"`
}

// FeedsConfig holds the feed generation toggles. All feeds default to off;
// enabling any of them requires site.url to be set (feeds need absolute links).
type FeedsConfig struct {
	AllAtom         bool `yaml:"all_atom,omitempty" toml:"all_atom,omitempty" json:"all_atom,omitempty"`
	CategoryAtom    bool `yaml:"category_atom,omitempty" toml:"category_atom,omitempty" json:"category_atom,omitempty"`
	TranslationAtom bool `yaml:"translation_atom,omitempty" toml:"translation_atom,omitempty" json:"translation_atom,omitempty"`
	AuthorAtom      bool `yaml:"author_atom,omitempty" toml:"author_atom,omitempty" json:"author_atom,omitempty"`
	AuthorRSS       bool `yaml:"author_rss,omitempty" toml:"author_rss,omitempty" json:"author_rss,omitempty"`
}

// AnyEnabled reports whether at least one feed toggle is on.
func (f FeedsConfig) AnyEnabled() bool {
	return f.AllAtom || f.CategoryAtom || f.TranslationAtom || f.AuthorAtom || f.AuthorRSS
}

// ThemeConfig references the theme by filesystem path, not by name. The path
// may live on the build host, so plain validation only checks the string shape;
// existence is checked by lint.
type ThemeConfig struct {
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
}

// SocialLink is an ordered (platform, URL) pair rendered into the social widget.
type SocialLink struct {
	Platform string `yaml:"platform" toml:"platform" json:"platform"`
	URL      string `yaml:"url" toml:"url" json:"url"`
}

// LinkEntry is an ordered (label, URL) blogroll pair.
type LinkEntry struct {
	Label string `yaml:"label" toml:"label" json:"label"`
	URL   string `yaml:"url" toml:"url" json:"url"`
}

// MenuItem is an ordered (label, path) navigation pair. Paths are usually
// relative to the generated site root (e.g. pages/about.html) but absolute
// URLs are accepted.
type MenuItem struct {
	Label string `yaml:"label" toml:"label" json:"label"`
	Path  string `yaml:"path" toml:"path" json:"path"`
}

// MenuConfig holds the explicit menu items plus the page auto-listing toggle.
// DisplayPages is a pointer so an omitted value can be defaulted to true
// without clobbering an explicit false.
type MenuConfig struct {
	Items        []MenuItem `yaml:"items,omitempty" toml:"items,omitempty" json:"items,omitempty"`
	DisplayPages *bool      `yaml:"display_pages,omitempty" toml:"display_pages,omitempty" json:"display_pages,omitempty"`
}

// DisplayPagesEnabled reports the effective toggle; defaults guarantee the
// pointer is set after Load, but guard anyway for hand-built configs.
func (m MenuConfig) DisplayPagesEnabled() bool {
	if m.DisplayPages == nil {
		return true
	}
	return *m.DisplayPages
}

// PaginationConfig controls article list pagination in the generator.
type PaginationConfig struct {
	PageSize int `yaml:"page_size,omitempty" toml:"page_size,omitempty" json:"page_size,omitempty"`
}

// DaemonConfig holds settings for siteconf daemon mode.
type DaemonConfig struct {
	HTTP    HTTPConfig    `yaml:"http,omitempty" toml:"http,omitempty" json:"http,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty" toml:"storage,omitempty" json:"storage,omitempty"`
}

// HTTPConfig holds the admin endpoint listen settings.
type HTTPConfig struct {
	AdminPort int `yaml:"admin_port,omitempty" toml:"admin_port,omitempty" json:"admin_port,omitempty"`
}

// StorageConfig locates the daemon's revision journal.
type StorageConfig struct {
	JournalPath string `yaml:"journal_path,omitempty" toml:"journal_path,omitempty" json:"journal_path,omitempty"`
}

// MonitoringConfig represents monitoring and observability configuration.
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics,omitempty" toml:"metrics,omitempty" json:"metrics,omitempty"`
	Health  MonitoringHealth  `yaml:"health,omitempty" toml:"health,omitempty" json:"health,omitempty"`
	Logging MonitoringLogging `yaml:"logging,omitempty" toml:"logging,omitempty" json:"logging,omitempty"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
}

// MonitoringHealth represents health check configuration.
type MonitoringHealth struct {
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty" toml:"format,omitempty" json:"format,omitempty"`
}

// LinkCheckConfig controls scheduled verification of outbound URLs
// (social links, blogroll, cover/profile images, absolute menu targets).
type LinkCheckConfig struct {
	Enabled          bool   `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	Interval         string `yaml:"interval,omitempty" toml:"interval,omitempty" json:"interval,omitempty"`
	NATSURL          string `yaml:"nats_url,omitempty" toml:"nats_url,omitempty" json:"nats_url,omitempty"`
	Subject          string `yaml:"subject,omitempty" toml:"subject,omitempty" json:"subject,omitempty"`
	ReloadSubject    string `yaml:"reload_subject,omitempty" toml:"reload_subject,omitempty" json:"reload_subject,omitempty"`
	KVBucket         string `yaml:"kv_bucket,omitempty" toml:"kv_bucket,omitempty" json:"kv_bucket,omitempty"`
	CacheTTL         string `yaml:"cache_ttl,omitempty" toml:"cache_ttl,omitempty" json:"cache_ttl,omitempty"`
	CacheTTLFailures string `yaml:"cache_ttl_failures,omitempty" toml:"cache_ttl_failures,omitempty" json:"cache_ttl_failures,omitempty"`
	MaxConcurrent    int    `yaml:"max_concurrent,omitempty" toml:"max_concurrent,omitempty" json:"max_concurrent,omitempty"`
	RequestTimeout   string `yaml:"request_timeout,omitempty" toml:"request_timeout,omitempty" json:"request_timeout,omitempty"`
}

// LogLevel enumerates supported logging levels (mapped onto slog).
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func NormalizeLogLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(LogLevelDebug):
		return LogLevelDebug
	case string(LogLevelInfo):
		return LogLevelInfo
	case string(LogLevelWarn):
		return LogLevelWarn
	case string(LogLevelError):
		return LogLevelError
	default:
		return ""
	}
}

// SlogLevel maps the level onto its slog equivalent. Unknown or empty
// levels fall back to info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

func NormalizeLogFormat(raw string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(LogFormatJSON):
		return LogFormatJSON
	case string(LogFormatText):
		return LogFormatText
	default:
		return ""
	}
}

// Format enumerates supported configuration file encodings.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// NormalizeFormat canonicalizes user input returning empty string if unknown.
func NormalizeFormat(raw string) Format {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yaml", "yml":
		return FormatYAML
	case "toml":
		return FormatTOML
	case "json":
		return FormatJSON
	default:
		return ""
	}
}

// NormalizePlatform canonicalizes a social platform name (lowercased, trimmed).
func NormalizePlatform(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
