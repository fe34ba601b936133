package config

import (
	"fmt"
	"os"
)

// Config is the root configuration for a site: the declarative values the
// generator consumes plus the sections siteconf itself needs (daemon,
// monitoring, link checking).
type Config struct {
	Site       SiteConfig        `yaml:"site" toml:"site" json:"site"`
	Feeds      FeedsConfig       `yaml:"feeds,omitempty" toml:"feeds,omitempty" json:"feeds,omitempty"`
	Theme      ThemeConfig       `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty"`
	Social     []SocialLink      `yaml:"social,omitempty" toml:"social,omitempty" json:"social,omitempty"`
	Links      []LinkEntry       `yaml:"links,omitempty" toml:"links,omitempty" json:"links,omitempty"`
	Menu       MenuConfig        `yaml:"menu,omitempty" toml:"menu,omitempty" json:"menu,omitempty"`
	Pagination PaginationConfig  `yaml:"pagination,omitempty" toml:"pagination,omitempty" json:"pagination,omitempty"`
	Plugins    []string          `yaml:"plugins,omitempty" toml:"plugins,omitempty" json:"plugins,omitempty"`
	Daemon     *DaemonConfig     `yaml:"daemon,omitempty" toml:"daemon,omitempty" json:"daemon,omitempty"`
	Monitoring *MonitoringConfig `yaml:"monitoring,omitempty" toml:"monitoring,omitempty" json:"monitoring,omitempty"`
	LinkCheck  *LinkCheckConfig  `yaml:"link_check,omitempty" toml:"link_check,omitempty" json:"link_check,omitempty"`
}

// Load reads, normalizes, defaults and validates a configuration file.
// The encoding is chosen by file extension (yaml/yml or toml). Environment
// variables referenced as ${VAR} are expanded after dotenv loading, so
// secrets never need to live in the file itself. Normalization warnings are
// returned for the caller to surface; they never fail the load.
func Load(configPath string) (*Config, []string, error) {
	if err := loadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	format := FormatForPath(configPath)
	cfg, err := Decode([]byte(expanded), format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Normalization runs before defaults so canonical values drive them.
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}

	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, res.Warnings, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	displayPages := true
	example := Config{
		Site: SiteConfig{
			Author:        "Jane Doe",
			Name:          "My Wandering Blog",
			URL:           "https://blog.example.com",
			Tagline:       "Notes from the road",
			ContentPath:   "content",
			Timezone:      "Europe/Berlin",
			DefaultLang:   "en",
			CoverImageURL: "https://blog.example.com/images/cover.jpg",
		},
		Theme: ThemeConfig{Path: "./pure-theme"},
		Social: []SocialLink{
			{Platform: "github", URL: "https://github.com/janedoe"},
			{Platform: "mastodon", URL: "https://fosstodon.org/@janedoe"},
		},
		Menu: MenuConfig{
			Items: []MenuItem{
				{Label: "About", Path: "pages/about-me.html"},
				{Label: "Research", Path: "pages/research.html"},
				{Label: "Software", Path: "pages/software.html"},
			},
			DisplayPages: &displayPages,
		},
		Pagination: PaginationConfig{PageSize: 10},
		Plugins:    []string{"sitemap", "neighbors"},
	}

	data, err := Encode(&example, FormatForPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
